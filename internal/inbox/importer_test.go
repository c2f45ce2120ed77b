package inbox

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/starford/glosa/internal/analyzer"
	"github.com/starford/glosa/internal/models"
	"github.com/starford/glosa/internal/noteservice"
	"github.com/starford/glosa/internal/store"
	"github.com/starford/glosa/internal/testutil"
)

type countingAnalyzer struct {
	mu  sync.Mutex
	ids []int64
}

func (c *countingAnalyzer) AnalyzeNote(_ context.Context, id int64, _ []string) (*analyzer.Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, id)
	return &analyzer.Report{}, nil
}

func testImporter(t *testing.T, an NoteAnalyzer) (*Importer, *store.DB, string) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := testutil.TestDB(t)
	dir := testutil.TestInbox(t)
	notes := noteservice.NewService(db, nil, logger)
	return NewImporter(dir, notes, db, an, logger), db, dir
}

func listNotes(t *testing.T, db *store.DB) []models.Note {
	t.Helper()
	notes, _, err := db.ListNotes(context.Background(), 100, 0)
	if err != nil {
		t.Fatal(err)
	}
	return notes
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestImportFile_CreateThenUnchanged(t *testing.T) {
	im, db, dir := testImporter(t, nil)
	ctx := context.Background()
	path := testutil.WriteFile(t, dir, "paseo.md", "---\ntitle: Paseo\n---\nEl perro corre.\n")

	out, err := im.ImportFile(ctx, path)
	if err != nil || out != Created {
		t.Fatalf("first import = %s, %v", out, err)
	}
	out, err = im.ImportFile(ctx, path)
	if err != nil || out != Unchanged {
		t.Fatalf("second import = %s, %v", out, err)
	}

	notes := listNotes(t, db)
	if len(notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(notes))
	}
	if notes[0].Title == nil || *notes[0].Title != "Paseo" || notes[0].Content != "El perro corre.\n" {
		t.Errorf("note = %+v", notes[0])
	}
	row, _ := db.GetImport(ctx, "paseo.md")
	if row == nil || row.NoteID != notes[0].ID {
		t.Errorf("import row = %+v", row)
	}
}

func TestImportFile_ChangedFileUpdatesNote(t *testing.T) {
	im, db, dir := testImporter(t, nil)
	ctx := context.Background()
	path := testutil.WriteFile(t, dir, "diario.txt", "# Lunes\nllueve")

	if _, err := im.ImportFile(ctx, path); err != nil {
		t.Fatal(err)
	}
	testutil.WriteFile(t, dir, "diario.txt", "hace sol")
	out, err := im.ImportFile(ctx, path)
	if err != nil || out != Updated {
		t.Fatalf("reimport = %s, %v", out, err)
	}

	notes := listNotes(t, db)
	if len(notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(notes))
	}
	if notes[0].Content != "hace sol" || notes[0].Title != nil {
		t.Errorf("note = %+v", notes[0])
	}
}

func TestImportFile_DeletedNote(t *testing.T) {
	im, db, dir := testImporter(t, nil)
	ctx := context.Background()
	path := testutil.WriteFile(t, dir, "a.md", "uno")

	if _, err := im.ImportFile(ctx, path); err != nil {
		t.Fatal(err)
	}
	first := listNotes(t, db)[0]
	if err := db.DeleteNote(ctx, first.ID); err != nil {
		t.Fatal(err)
	}

	// An unchanged file stays deleted.
	out, err := im.ImportFile(ctx, path)
	if err != nil || out != Unchanged {
		t.Fatalf("unchanged import after delete = %s, %v", out, err)
	}
	if n := len(listNotes(t, db)); n != 0 {
		t.Fatalf("notes = %d, want 0", n)
	}

	// Editing the file brings it back as a new note.
	testutil.WriteFile(t, dir, "a.md", "dos")
	out, err = im.ImportFile(ctx, path)
	if err != nil || out != Created {
		t.Fatalf("import after edit = %s, %v", out, err)
	}
	notes := listNotes(t, db)
	if len(notes) != 1 || notes[0].ID == first.ID {
		t.Errorf("notes = %+v", notes)
	}
}

func TestImportFile_Skips(t *testing.T) {
	im, db, dir := testImporter(t, nil)
	ctx := context.Background()

	png := testutil.WriteFile(t, dir, "foto.png", "binary")
	empty := testutil.WriteFile(t, dir, "vacio.md", "---\ntitle: Nada\n---\n\n")

	for _, p := range []string{png, empty} {
		out, err := im.ImportFile(ctx, p)
		if err != nil || out != Skipped {
			t.Errorf("%s: %s, %v", filepath.Base(p), out, err)
		}
	}
	if n := len(listNotes(t, db)); n != 0 {
		t.Errorf("notes = %d, want 0", n)
	}
}

func TestScan(t *testing.T) {
	an := &countingAnalyzer{}
	im, db, dir := testImporter(t, an)
	testutil.WriteFile(t, dir, "uno.md", "uno")
	testutil.WriteFile(t, dir, "sub/dos.txt", "dos")
	testutil.WriteFile(t, dir, "tres.png", "tres")

	if err := im.Scan(context.Background()); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if n := len(listNotes(t, db)); n != 2 {
		t.Errorf("notes = %d, want 2", n)
	}
	if len(an.ids) != 2 {
		t.Errorf("analyzed = %v, want 2 notes", an.ids)
	}

	// A second scan finds nothing new.
	if err := im.Scan(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(an.ids) != 2 {
		t.Errorf("rescan analyzed again: %v", an.ids)
	}
}

func TestWatch_NewFileImported(t *testing.T) {
	im, db, dir := testImporter(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = im.Watch(ctx)
		close(done)
	}()
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "nueva.md"), []byte("# Nueva\ntexto"), 0o644); err != nil {
		t.Fatal(err)
	}
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		row, _ := db.GetImport(context.Background(), "nueva.md")
		return row != nil
	}, "new file not imported by watcher")

	// Files in directories created later are picked up too.
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "sub", "otra.txt"), []byte("otra"), 0o644); err != nil {
		t.Fatal(err)
	}
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		row, _ := db.GetImport(context.Background(), "sub/otra.txt")
		return row != nil
	}, "file in new dir not imported")

	// Removing the file keeps the note.
	_ = os.Remove(filepath.Join(dir, "nueva.md"))
	time.Sleep(100 * time.Millisecond)
	if n := len(listNotes(t, db)); n != 2 {
		t.Errorf("notes = %d, want 2", n)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
