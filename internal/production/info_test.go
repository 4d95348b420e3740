package production

import (
	"sync"
	"testing"
)

func TestNormalizeLiftsFlatCasedNames(t *testing.T) {
	info := Info{
		DirectorName: "  jane doe ",
		ProducerName: "SAM SMITH",
		Title:        "  The Long Night ",
	}

	out := info.Normalize()
	if out.DirectorName != "Jane Doe" {
		t.Fatalf("director = %q", out.DirectorName)
	}
	if out.ProducerName != "Sam Smith" {
		t.Fatalf("producer = %q", out.ProducerName)
	}
	if out.Title != "The Long Night" {
		t.Fatalf("title = %q", out.Title)
	}
}

func TestNormalizeKeepsMixedCaseNames(t *testing.T) {
	info := Info{DirectorName: "Jane McAdams"}
	if out := info.Normalize(); out.DirectorName != "Jane McAdams" {
		t.Fatalf("director = %q", out.DirectorName)
	}
}

func TestNormalizeIsSafeForConcurrentUse(t *testing.T) {
	info := Info{DirectorName: "jane doe", ProducerName: "SAM SMITH"}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				if out := info.Normalize(); out.DirectorName != "Jane Doe" {
					t.Errorf("director = %q", out.DirectorName)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestIsZero(t *testing.T) {
	if !(Info{}).IsZero() {
		t.Fatal("empty info should be zero")
	}
	if (Info{Title: "x"}).IsZero() {
		t.Fatal("populated info should not be zero")
	}
}
