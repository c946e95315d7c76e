package gateway

import (
	"fmt"
	"strings"

	"ap-script-studio/internal/domain"
)

// discoveryPrompt はカテゴリを絞ったトピック発見のプロンプトを組み立てます。
func discoveryPrompt(category string) string {
	return fmt.Sprintf(`You are a Content Strategist.
Find 5-6 trending, high-impact news topics related to "%s".
Prioritize recent events (last 7 days), but if specific news is scarce, include ongoing major trends or evergreen controversial topics suitable for content creation.

Return the response in JSON format.`, category)
}

// scriptPrompt はペルソナ・形式・語数・文体・言語をパラメータ化した台本生成プロンプトです。
func scriptPrompt(topic domain.Topic, cfg domain.GenerationConfig) string {
	audience := topic.Category
	if audience == "" {
		audience = "General News"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Act as %s.\n", cfg.AuthorRole)
	fmt.Fprintf(&b, "Compose a %s about: %q.\n", cfg.Format, topic.Title)
	fmt.Fprintf(&b, "Context/Summary: %q.\n\n", topic.Summary)
	fmt.Fprintf(&b, "Target Audience: General Public interested in %s.\n", audience)
	fmt.Fprintf(&b, "Language: %s.\n", cfg.Language)
	fmt.Fprintf(&b, "Tone/Style: %s.\n", cfg.Style)
	fmt.Fprintf(&b, "Approximate Length: %d words.\n\n", cfg.WordCount)

	b.WriteString(`Structure the response as valid JSON with the following keys:
1. title (String) - Engaging title.
2. subtitleOrDescription (String) - Brief abstract or description.
3. tags (Array of Strings)
4. sections (Array of Objects)
   Each section object must have:
   - 'title' (String): Heading or Scene Header.
   - 'content' (String): The body text or spoken script.
`)
	if cfg.Format.HasVideoDirection() {
		b.WriteString("   - 'visualPrompt' (String): Detailed description for visual background.\n")
		b.WriteString("   - 'timestampStr' (String): E.g., '00:00'.\n")
	}
	return b.String()
}

func scriptSystemInstruction(format domain.Format) string {
	return fmt.Sprintf("You are a professional content creator specializing in %s. Output valid JSON.", format)
}

// coverPrompt はミニマルで編集部的な16:9カバー画像のプロンプトです。
func coverPrompt(title, context string) string {
	return fmt.Sprintf(`Create a cover image/thumbnail for a content piece titled %q.
Context: %s.
Style: Minimalist, editorial, high quality.
Aspect Ratio: 16:9.`, title, context)
}

// introPrompt は30〜40秒のナレーション原稿を依頼するプロンプトです。
func introPrompt(script *domain.Script) string {
	samples := make([]string, 0, 2)
	for i, sec := range script.Sections {
		if i >= 2 {
			break
		}
		samples = append(samples, sec.Content)
	}

	return fmt.Sprintf(`Based on the following content, write a compelling 30-40 second spoken introductory overview.
It should hook the listener and summarize what they are about to read/watch.

Title: %s
Content Sample: %s...`, script.Title, strings.Join(samples, " "))
}

// slidePrompt は5〜8枚のスライド概要を依頼するプロンプトです。
func slidePrompt(script *domain.Script) string {
	return fmt.Sprintf(`Based on the script provided, create a presentation slide deck structure (5-8 slides).
Script Title: %s
Script Content: %s

Return a JSON array where each item is a slide with:
- title (String)
- bulletPoints (Array of Strings) - Key takeaways
- speakerNotes (String) - Brief notes for the presenter`, script.Title, joinSectionBodies(script, "\n"))
}

// documentPrompt はWord出力向けのセマンティックHTML断片を依頼するプロンプトです。
func documentPrompt(script *domain.Script, authorName string) string {
	var body strings.Builder
	for _, sec := range script.Sections {
		fmt.Fprintf(&body, "<h2>%s</h2><p>%s</p>\n", sec.Title, sec.Content)
	}

	return fmt.Sprintf(`Convert the following script into a formatted HTML document suitable for export to MS Word.
Use semantic HTML (h1, h2, p, ul).
Add a professional header with the title and "Prepared by %s".
Add a Table of Contents placeholder if appropriate.

Script Title: %s
Script Content: %s

Return ONLY the HTML code inside <body> tags (no html/head tags needed).`, authorName, script.Title, body.String())
}

func joinSectionBodies(script *domain.Script, sep string) string {
	bodies := make([]string, 0, len(script.Sections))
	for _, sec := range script.Sections {
		bodies = append(bodies, sec.Content)
	}
	return strings.Join(bodies, sep)
}
