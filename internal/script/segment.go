package script

import (
	"regexp"
	"strings"
)

// Scene 视频稿中解析出的一个展示单元（仅派生，不持久化）
// Scene is one parsed display unit of a video script (derived, never stored)
type Scene struct {
	Index     int
	Title     string
	Visual    string
	Voiceover string
	Duration  string
	Other     string
}

// Breakdown 视频稿全文的分段结果
// Breakdown is the segmentation result of a video script's full text
type Breakdown struct {
	// StyleDirective 为空表示全文没有风格说明段
	// Empty StyleDirective means the text carries no style block
	StyleDirective string
	Scenes         []Scene
}

var (
	sceneHeaderRe = regexp.MustCompile(`(?i)Scene \d+:`)
	sceneTitleRe  = regexp.MustCompile(`(?i)^Scene \d+:\s*(.+)`)
	voPrefixRe    = regexp.MustCompile(`(?i)^VO:\s*`)
	visualRe      = regexp.MustCompile(`(?i)^Visual:\s*`)
	durationRe    = regexp.MustCompile(`(?i)^Duration:\s*`)
	stylePrefixRe = regexp.MustCompile(`(?i)^Style:\s*`)
)

// Segment 把扁平的视频稿文本切分为风格说明加有序场景列表。
// 按 "Scene <N>:" 边界切块（分隔符保留为后一块的开头）；首个场景头之前的
// 非空文本视为风格说明（去掉字面 "Style:" 标签）。场景内逐行识别
// VO:/Visual:/Duration: 前缀，未识别的行原样归入 Other。这是宽松的
// 尽力解析，不是严格文法：任何畸形输入都不会失败。
// Segment splits flat video-script text into a style directive plus an
// ordered scene list. Blocks break at each "Scene <N>:" header (the delimiter
// stays with the following block); non-empty text before the first header is
// the style directive (a literal "Style:" label is stripped). Within a scene,
// lines are matched against VO:/Visual:/Duration: prefixes; everything else
// is preserved as Other. Lenient best-effort parsing, never fails.
func Segment(fullText string) Breakdown {
	var out Breakdown

	locs := sceneHeaderRe.FindAllStringIndex(fullText, -1)

	preamble := fullText
	if len(locs) > 0 {
		preamble = fullText[:locs[0][0]]
	}
	if style := strings.TrimSpace(preamble); style != "" {
		out.StyleDirective = stylePrefixRe.ReplaceAllString(style, "")
	}

	for i, loc := range locs {
		end := len(fullText)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := strings.TrimSpace(fullText[loc[0]:end])
		if block == "" {
			continue
		}
		out.Scenes = append(out.Scenes, parseScene(len(out.Scenes)+1, block))
	}
	return out
}

func parseScene(index int, block string) Scene {
	var lines []string
	for _, raw := range strings.Split(block, "\n") {
		if l := strings.TrimSpace(raw); l != "" {
			lines = append(lines, l)
		}
	}

	scene := Scene{Index: index}
	if len(lines) == 0 {
		return scene
	}

	header := lines[0]
	if m := sceneTitleRe.FindStringSubmatch(header); m != nil {
		scene.Title = m[1]
	} else {
		// 头部不符合模式时回落为整行 / Fallback: the raw header line
		scene.Title = header
	}

	var vo, visual, other []string
	for _, line := range lines[1:] {
		switch {
		case voPrefixRe.MatchString(line):
			vo = append(vo, trimQuotes(voPrefixRe.ReplaceAllString(line, "")))
		case visualRe.MatchString(line):
			visual = append(visual, visualRe.ReplaceAllString(line, ""))
		case durationRe.MatchString(line):
			// 多个 Duration 行时保留最后一个 / Last Duration line wins
			scene.Duration = durationRe.ReplaceAllString(line, "")
		default:
			other = append(other, line)
		}
	}
	scene.Voiceover = strings.Join(vo, " ")
	scene.Visual = strings.Join(visual, " ")
	scene.Other = strings.Join(other, " ")
	return scene
}

func trimQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
