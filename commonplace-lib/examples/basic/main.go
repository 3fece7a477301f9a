// ABOUTME: Basic example showing document enhancement with the Commonplace library
// ABOUTME: Demonstrates extraction, enhancement and proposal acceptance

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	commonplace "commonplace-api/commonplace-lib"
)

const article = `<h2>Weekend notes</h2>
<p>we went to the lake on saturday it was cold.</p>
<figure><img src="https://example.com/lake.jpg" alt="The lake"></figure>
<p><em>Photo: the lake at dawn</em></p>
<p>the kids found a frog and named it gerald.</p>
<div class="video-embed"><iframe src="https://www.youtube.com/embed/abc123"></iframe></div>
<p>next time we bring more coffee.</p>`

func main() {
	opts := []commonplace.Option{commonplace.WithLogger(commonplace.DefaultLogger())}
	if url := os.Getenv("TRANSFORMER_URL"); url != "" {
		opts = append(opts, commonplace.WithRemoteTransformer(url, os.Getenv("TRANSFORMER_API_KEY"), time.Minute))
	} else if os.Getenv("GEMINI_API_KEY") != "" {
		opts = append(opts, commonplace.WithGeminiTransformer(context.Background(), "", ""))
	} else {
		opts = append(opts, commonplace.WithEchoTransformer())
	}

	client, err := commonplace.NewClient(opts...)
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}
	defer client.Close()

	ctx := context.Background()

	// Example 1: See what a transformer receives
	fmt.Println("=== Extraction ===")
	extracted, err := client.Extract(ctx, article)
	if err != nil {
		log.Fatalf("Error extracting: %v", err)
	}
	fmt.Println(extracted.TextOnly)
	for _, m := range extracted.Media {
		fmt.Printf("- %s after %d text blocks\n", m.Type, m.Position)
	}

	// Example 2: Enhance and accept
	fmt.Println("\n=== Enhancement ===")
	proposal, err := client.Enhance(ctx, commonplace.EnhanceInput{
		DocumentID: "weekend-notes",
		Title:      "Weekend notes",
		HTML:       article,
		Mode:       commonplace.ModePolish,
	})
	if err != nil {
		log.Fatalf("Error enhancing: %v", err)
	}
	fmt.Printf("Proposal %s keeps %d media items\n", proposal.ID, proposal.MediaCount)

	accepted, err := client.AcceptProposal(ctx, proposal.ID)
	if err != nil {
		log.Fatalf("Error accepting: %v", err)
	}
	fmt.Println(accepted.HTML)
}
