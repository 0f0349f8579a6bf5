package script

// Script 一条已生成的短视频口播脚本（hook/body/cta 结构）
// Script is one generated short-form script (hook/body/cta structure)
type Script struct {
	Hook              string `json:"hook"`
	Body              string `json:"body"`
	CTA               string `json:"cta"`
	Title             string `json:"title"`
	EstimatedDuration string `json:"estimated_duration"`
}

// VideoScript 由已批准脚本派生的视频制作稿
// VideoScript is the production-script artifact derived from an approved Script
type VideoScript struct {
	// FullText 为空表示"尚未生成"，而不是空的成功结果
	// An empty FullText means "not generated", never an empty success
	FullText      string `json:"video_script"`
	TotalDuration string `json:"total_duration"`
	SceneCount    string `json:"scene_count"`
}

// Generated 报告视频稿是否算作已生成
// Generated reports whether the video script counts as generated
func (v VideoScript) Generated() bool {
	return v.FullText != ""
}
