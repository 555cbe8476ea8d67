package action

// Kind identifies the artifact an action produces.
type Kind string

const (
	// KindBlogPost turns a Confluence page into a blog post.
	KindBlogPost Kind = "blog_post"
	// KindSlideDeck turns Jira issues into a slide deck outline.
	KindSlideDeck Kind = "slide_deck"
	// KindReleaseNotes turns a GitHub release into a release notification.
	KindReleaseNotes Kind = "release_notes"
)

type preset struct {
	name         string
	instructions string
	template     string
}

var presets = map[Kind]preset{
	KindBlogPost: {
		name:         "blog_post",
		instructions: "You are a technical writer. Write engaging, accurate blog posts in Markdown.",
		template: `Write a blog post for {{default "engineers" .audience}} based on the page "{{.title}}".
{{- if .url}}
Source: {{.url}}
{{- end}}

{{.body}}
{{- if .notes}}

Additional instructions: {{.notes}}
{{- end}}`,
	},
	KindSlideDeck: {
		name:         "slide_deck",
		instructions: "You create concise slide decks. Answer with one Markdown section per slide, each with at most five bullets.",
		template: `Create a slide deck for {{default "stakeholders" .audience}} titled "{{.title}}".
{{- if .body}}

{{.body}}
{{- end}}
{{- if .items}}

Cover these issues:
{{- range .items}}
- {{.}}
{{- end}}
{{- end}}
{{- if .notes}}

Additional instructions: {{.notes}}
{{- end}}`,
	},
	KindReleaseNotes: {
		name:         "release_notes",
		instructions: "You announce software releases. Be brief, highlight user-facing changes and breaking changes first.",
		template: `Write a release notification for {{default "users" .audience}} about {{.title}}.
{{- if .url}}
Release: {{.url}}
{{- end}}
{{- if .items}}

Changes:
{{- range .items}}
- {{.}}
{{- end}}
{{- end}}
{{- if .body}}

{{truncate 4000 .body}}
{{- end}}
{{- if .notes}}

Additional instructions: {{.notes}}
{{- end}}`,
	},
}
