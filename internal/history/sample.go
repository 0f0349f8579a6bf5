package history

import (
	"time"

	"studio/internal/script"
)

// SampleScript 示例模式用的演示脚本 / SampleScript is the demo script for sample mode
func SampleScript() script.Script {
	return script.Script{
		Title:             "Build an AI App in 60 Seconds",
		Hook:              "Wait -- you can build a FULL AI app without writing a single line of code? Let me show you how I did it in under a minute.",
		Body:              "So I found this tool called Architect, and honestly, it blew my mind. I literally typed in what I wanted -- a customer support chatbot -- hit generate, and boom. It gave me a working app with a clean UI, connected to an AI agent, ready to deploy. No backend setup, no API headaches, no config files. Just describe your idea and it builds the whole thing. The AI handles the logic, the routing, everything. I even customized the look in like 10 seconds.",
		CTA:               "Link is in my bio. Go try Architect right now -- you will thank me later. Drop a comment if you build something cool!",
		EstimatedDuration: "45-55 seconds",
	}
}

// SampleVideoScript 示例模式用的演示视频稿
// SampleVideoScript is the demo video script for sample mode
func SampleVideoScript() script.VideoScript {
	return script.VideoScript{
		FullText: "Style: Use minimal, clean styled visuals. Blue, black, and white as main colors. Leverage motion graphics as B-rolls and A-roll overlays. Use AI videos when necessary. When real-world footage is needed, use Stock Media. Include an intro sequence, outro sequence, and chapter breaks using Motion Graphics.\n\n" +
			"Scene 1: Hook (A-roll with Motion Graphics overlay)\nVisual: Avatar on clean dark background, text overlay animates in with \"Build an AI App in 60s?\"\nVO: \"Wait -- you can build a FULL AI app without writing a single line of code? Let me show you how I did it in under a minute.\"\nDuration: 5 seconds\n\n" +
			"Scene 2: Discovery (A-roll + Screen Recording B-roll)\nVisual: Avatar speaking, then cut to screen recording of Architect landing page with animated callouts highlighting key features\nVO: \"So I found this tool called Architect, and honestly, it blew my mind. I literally typed in what I wanted -- a customer support chatbot -- hit generate...\"\nDuration: 12 seconds\n\n" +
			"Scene 3: Demo (Motion Graphics B-roll)\nVisual: Full-screen animated walkthrough showing the build process -- typing a prompt, UI generating, components appearing. Use motion graphics overlays for step labels.\nVO: \"...and boom. It gave me a working app with a clean UI, connected to an AI agent, ready to deploy. No backend setup, no API headaches, no config files.\"\nDuration: 15 seconds\n\n" +
			"Scene 4: Result (AI-Generated B-roll + Motion Graphics overlay)\nVisual: AI-generated visuals of a polished app interface with animated feature callouts. Quick cuts between different screens.\nVO: \"Just describe your idea and it builds the whole thing. The AI handles the logic, the routing, everything. I even customized the look in like 10 seconds.\"\nDuration: 12 seconds\n\n" +
			"Scene 5: CTA (A-roll with Motion Graphics overlay)\nVisual: Avatar, confident and enthusiastic delivery. Animated text overlay: \"Link in Bio\" with arrow pointing down. Brand colors pulse subtly.\nVO: \"Link is in my bio. Go try Architect right now -- you will thank me later. Drop a comment if you build something cool!\"\nDuration: 8 seconds\n\n" +
			"Scene 6: End Card (Motion Graphics)\nVisual: Architect logo animation with tagline. Clean fade to brand colors.\nDuration: 3 seconds",
		TotalDuration: "55 seconds",
		SceneCount:    "6",
	}
}

// SampleEntries 示例模式的历史列表（一条已生成视频稿、一条仅批准）
// SampleEntries is the sample-mode history list (one with a generated video
// script, one approved only)
func SampleEntries() []Entry {
	now := time.Now().UTC()
	sampleScript := SampleScript()
	sampleVideo := SampleVideoScript()
	approvedOnly := script.Script{
		Title:             "From Drowning in Tickets to 80% Automation",
		Hook:              "This startup was losing $50K a month on support tickets. Here is how they fixed it overnight.",
		Body:              "They were a 10-person SaaS company getting 500+ tickets a day. Their support team was burned out. Then they tried Architect to build an AI agent that handles tier-1 support automatically...",
		CTA:               "Want the same results? Check the link in bio for Architect.",
		EstimatedDuration: "40-50 seconds",
	}

	return []Entry{
		{
			ID:          "sample-1",
			ContentIdea: "How to build an AI-powered customer support chatbot without coding",
			ContentType: "How-To",
			Notes:       "Target audience: non-technical founders",
			Script:      &sampleScript,
			VideoScript: &sampleVideo,
			Status:      StatusVideoScriptGenerated,
			CreatedAt:   now.Add(-24 * time.Hour).Format(time.RFC3339),
		},
		{
			ID:          "sample-2",
			ContentIdea: "Case study: How a SaaS startup automated 80% of their support tickets",
			ContentType: "Case Study",
			Notes:       "",
			Script:      &approvedOnly,
			VideoScript: nil,
			Status:      StatusApproved,
			CreatedAt:   now.Add(-48 * time.Hour).Format(time.RFC3339),
		},
	}
}
