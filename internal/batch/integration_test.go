package batch_test

import (
	"context"
	"testing"

	"postersync/internal/batch"
	"postersync/internal/plex"
	"postersync/internal/poster"
	"postersync/internal/testsupport"
)

func TestRunAgainstFakePlexIsIdempotent(t *testing.T) {
	fp := testsupport.NewFakePlex(t, "token")
	fp.AddSection(testsupport.FakeSection{Key: "1", Title: "Movies", Type: "movie"},
		testsupport.FakeCollection{RatingKey: "101", Title: "Alien", TitleSort: "Alien"},
		testsupport.FakeCollection{RatingKey: "102", Title: "Batman", TitleSort: "Batman"},
		testsupport.FakeCollection{RatingKey: "103", Title: "Hidden", TitleSort: "Hidden***"},
	)
	fp.SetImages("101", testsupport.FakeImage{ID: "https://metadata/alien.jpg", Selected: true})

	root := t.TempDir()
	alien := []byte("alien poster")
	testsupport.WritePoster(t, root, "1-Movies", "Alien Collection.jpg", alien)
	testsupport.WritePoster(t, root, "1-Movies", "Hidden.jpg", []byte("hidden"))

	client := plex.NewClient(plex.Options{BaseURL: fp.URL(), Token: "token", HTTP: fp.Server.Client()})
	run := func(dryRun bool) batch.Report {
		engine := poster.NewEngine(poster.NewResolver(root), nil, client, poster.Options{DryRun: dryRun, SkipMarker: "***"})
		report, err := batch.NewRunner(client, engine, batch.Options{}).Run(context.Background())
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		return report
	}

	dry := run(true)
	if len(fp.Mutations()) != 0 {
		t.Fatalf("dry run mutated Plex: %+v", fp.Mutations())
	}
	if dry.Totals != (batch.Counters{Found: 1, Missing: 1, Skipped: 1}) {
		t.Fatalf("dry-run totals = %+v", dry.Totals)
	}

	first := run(false)
	if first.Scopes[0].Outcomes[poster.OutcomeUploaded] != 1 {
		t.Fatalf("first run should upload once: %+v", first.Scopes[0].Outcomes)
	}
	if len(fp.Mutations()) != 1 {
		t.Fatalf("expected exactly one mutation, got %d", len(fp.Mutations()))
	}
	images := fp.Images("101")
	if got := images[len(images)-1]; got.ID != testsupport.UploadID(alien) || !got.Selected {
		t.Fatalf("uploaded poster not selected: %+v", images)
	}

	second := run(false)
	if second.Scopes[0].Outcomes[poster.OutcomeAlreadyCorrect] != 1 {
		t.Fatalf("second run should find the poster in place: %+v", second.Scopes[0].Outcomes)
	}
	if len(fp.Mutations()) != 1 {
		t.Fatalf("second run mutated Plex: %d mutations", len(fp.Mutations()))
	}
}
