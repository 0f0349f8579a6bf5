package tui

import "github.com/atotto/clipboard"

// CopyText 写入系统剪贴板。变量形式便于测试替换。
// CopyText writes to the system clipboard. A variable so tests can stub it.
var CopyText = clipboard.WriteAll
