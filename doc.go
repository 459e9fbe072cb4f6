/*
Package techseo augments technical blog posts with structured SEO metadata.

Posts are written in the block-comment serialization used by block editors
(<!-- wp:code {"language":"go"} -->...<!-- /wp:code -->). From that content
the Engine derives a schema.org TechArticle (code samples plus how-to steps),
renders cross-posts for dev.to, Medium, LinkedIn, X and Bluesky, and builds
an llms.txt index of every qualifying post.

# Qualifying posts

A post qualifies for structured data when it has opted in (techarticle_enabled)
and its block tree contains at least one code block and at least one step
block. Posts that do not qualify simply produce no markup.

# Usage

	posts, err := memory.NewPosts(&domain.Post{ID: 1, Title: "Hello", Content: content})
	if err != nil {
		log.Fatal(err)
	}

	eng, err := techseo.New(posts, techseo.WithSite(llms.Site{Name: "Dev Notes", Home: "https://notes.example/"}))
	if err != nil {
		log.Fatal(err)
	}

	post, _ := eng.Post(ctx, 1)
	head, _ := eng.HeadMarkup(ctx, post)
	tweet, _ := eng.CrossPost(ctx, "x", post)

The same Engine backs the HTTP server (pkg/adapters/http), the MCP tools
(pkg/adapters/mcp) and the techseo command.
*/
package techseo
