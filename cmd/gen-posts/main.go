package main

import (
	"context"
	"fmt"
	"os"

	loamAdapter "github.com/aretw0/techseo/pkg/adapters/loam"
	"github.com/aretw0/techseo/pkg/domain"
)

func main() {
	targetDir := "examples/sample-blog"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating sample posts in: %s\n", targetDir)

	// Init Loam (No Versioning = pure file generation)
	posts, err := loamAdapter.Create(targetDir)
	check(err)
	ctx := context.TODO()

	// 1. A complete tutorial: code and steps, opted in.
	check(posts.Save(ctx, &domain.Post{
		ID:         1,
		Title:      "Deploying a Go service with systemd",
		Permalink:  "https://blog.example/deploy-go-systemd/",
		Excerpt:    "Build a static binary and run it as a systemd unit.",
		AuthorName: "Ada",
		Tags:       []string{"go", "systemd", "deploy"},
		Status:     domain.StatusPublish,
		Enabled:    true,
		Content: `<!-- wp:paragraph --><p>Build once, copy, run.</p><!-- /wp:paragraph -->
<!-- wp:heading --><h2>Build</h2><!-- /wp:heading -->
<!-- wp:code {"language":"bash"} --><pre class="wp-block-code"><code>CGO_ENABLED=0 go build -o app ./cmd/app</code></pre><!-- /wp:code -->
<!-- wp:forwp-seo/techarticle-steps {"steps":[{"text":"Build the binary"},{"text":"Copy it to /usr/local/bin"},{"text":"Enable the unit"}]} /-->`,
	}))

	// 2. Nested step blocks inside a group.
	check(posts.Save(ctx, &domain.Post{
		ID:        2,
		Title:     "Profiling with pprof",
		Permalink: "https://blog.example/profiling-pprof/",
		Tags:      []string{"go", "performance"},
		Status:    domain.StatusPublish,
		Enabled:   true,
		Content: `<!-- wp:group --><div class="wp-block-group">
<!-- wp:forwp-seo/techarticle-step --><div>
<!-- wp:paragraph --><p>Expose the handlers.</p><!-- /wp:paragraph -->
<!-- wp:code {"language":"go"} --><pre class="wp-block-code"><code>import _ "net/http/pprof"</code></pre><!-- /wp:code -->
</div><!-- /wp:forwp-seo/techarticle-step -->
<!-- wp:forwp-seo/techarticle-step --><div>
<!-- wp:paragraph --><p>Capture a CPU profile.</p><!-- /wp:paragraph -->
</div><!-- /wp:forwp-seo/techarticle-step -->
</div><!-- /wp:group -->`,
	}))

	// 3. Prose only: opted in but fails the validity gate.
	check(posts.Save(ctx, &domain.Post{
		ID:        3,
		Title:     "Why we write runbooks",
		Permalink: "https://blog.example/runbooks/",
		Status:    domain.StatusPublish,
		Enabled:   true,
		Content:   `<!-- wp:paragraph --><p>Runbooks turn incidents into checklists.</p><!-- /wp:paragraph -->`,
	}))

	// 4. Draft: never listed in llms.txt.
	check(posts.Save(ctx, &domain.Post{
		ID:        4,
		Title:     "Draft: tracing with OpenTelemetry",
		Permalink: "https://blog.example/otel-draft/",
		Status:    "draft",
		Enabled:   true,
		Content: `<!-- wp:code {"language":"go"} --><pre class="wp-block-code"><code>otel.Tracer("app")</code></pre><!-- /wp:code -->
<!-- wp:forwp-seo/techarticle-steps {"steps":[{"text":"Install the SDK"}]} /-->`,
	}))

	fmt.Println("Done. Verify contents in", targetDir)
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
