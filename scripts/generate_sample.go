//go:build ignore

// generate_sample writes a deterministic collection of notes in the export
// format, for trying out import, search and the browser on a larger set.
//
//	go run scripts/generate_sample.go > sample.json
//	go run scripts/generate_sample.go -format yaml -n 50 > sample.yaml
package main

import (
	"flag"
	"fmt"
	mrand "math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mithrel/mdnotes/internal/exchange"
	"github.com/mithrel/mdnotes/pkg/api"
)

var topics = []string{"groceries", "meeting", "garden", "reading", "travel", "recipe", "workout", "ideas"}

func main() {
	total := flag.Int("n", 500, "number of notes")
	formatName := flag.String("format", "json", "json|ndjson|yaml")
	flag.Parse()

	f, err := exchange.ParseFormat(*formatName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	out := make([]api.Note, 0, *total)
	for i := 0; i < *total; i++ {
		topic := topics[mr.Intn(len(topics))]
		out = append(out, api.Note{
			ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("sample-%d", i))).String(),
			Title:     fmt.Sprintf("%s %03d", strings.ToUpper(topic[:1])+topic[1:], i+1),
			Content:   sampleContent(mr, topic, i),
			Pinned:    mr.Float64() < 0.05,
			UpdatedAt: base.Add(-time.Duration(30*i+mr.Intn(60)) * time.Minute),
		})
	}

	if err := exchange.Encode(os.Stdout, out, f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func sampleContent(r *mrand.Rand, topic string, i int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\nNote **%03d** about *%s*.\n\n", topic, i+1, topic)
	for j, k := 0, 1+r.Intn(4); j < k; j++ {
		fmt.Fprintf(&b, "- item %d for `%s`\n", j+1, topic)
	}
	if r.Float64() < 0.3 {
		b.WriteString("\n```go\nfmt.Println(\"" + topic + "\")\n```\n")
	}
	if r.Float64() < 0.2 {
		fmt.Fprintf(&b, "\nSee [more](https://example.com/%s/%d).\n", topic, i+1)
	}
	return b.String()
}
