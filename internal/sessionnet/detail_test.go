package sessionnet

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/fkoehler/stadtticker/internal/event"
	"github.com/fkoehler/stadtticker/internal/fetch"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc
}

func TestDiscoverSessions(t *testing.T) {
	const page = `<html><body>
<a href="si0057.asp?__ksinr=1234">Sitzung</a>
<a href="to0040.asp?__ksinr=1234">Tagesordnung</a>
<a href="si0057.asp?__ksinr=5678">Andere Sitzung</a>
<a href="mailto:rathaus@example.de">Kontakt</a>
<a href="si0057.asp">Ohne Id</a>
</body></html>`

	base, _ := url.Parse("https://sessionnet.example.de/bi/")
	links := DiscoverSessions(mustDoc(t, page), base)

	if len(links) != 2 {
		t.Fatalf("expected 2 distinct sessions, got %d: %v", len(links), links)
	}
	if links[0].ID != "1234" || links[1].ID != "5678" {
		t.Errorf("first occurrence must win, got %v", links)
	}
	if links[0].URL != "https://sessionnet.example.de/bi/si0057.asp?__ksinr=1234" {
		t.Errorf("relative link not resolved: %s", links[0].URL)
	}
}

func TestPickValue(t *testing.T) {
	ls := []string{"Gremium", "Bauausschuss", "Datum", "01.02.2026", "Zeit"}

	tests := []struct {
		label    string
		expected string
	}{
		{"Gremium", "Bauausschuss"},
		{"Datum", "01.02.2026"},
		{"Zeit", ""}, // label is last line, no value follows
		{"Raum", ""}, // label absent entirely
	}

	for _, tt := range tests {
		if got := pickValue(ls, tt.label); got != tt.expected {
			t.Errorf("pickValue(%q) = %q, expected %q", tt.label, got, tt.expected)
		}
	}
}

func TestFetchDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><table>
<tr><td>Gremium</td></tr><tr><td>Bauausschuss</td></tr>
<tr><td>Datum</td></tr><tr><td>01.02.2026</td></tr>
<tr><td>Zeit</td></tr><tr><td>18:00 Uhr</td></tr>
<tr><td>Raum</td></tr><tr><td>Sitzungssaal</td></tr>
</table></body></html>`)
	}))
	defer server.Close()

	client := fetch.New(fetch.Options{SkipRobots: true, Delay: 1})
	link := SessionLink{ID: "1234", URL: server.URL + "/si0057.asp?__ksinr=1234"}

	ev, err := FetchDetail(context.Background(), client, link)
	if err != nil {
		t.Fatalf("FetchDetail failed: %v", err)
	}

	if ev.UID != "ksinr:1234" {
		t.Errorf("uid = %q", ev.UID)
	}
	if ev.Title != "Bauausschuss" || ev.Date != "01.02.2026" || ev.Time != "18:00 Uhr" || ev.Location != "Sitzungssaal" {
		t.Errorf("fields = %+v", ev)
	}
	if ev.Source != event.SourceDetail {
		t.Errorf("source = %q", ev.Source)
	}
}

func TestFetchDetailMissingLabels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Gremium</p><p>Bauausschuss</p></body></html>`)
	}))
	defer server.Close()

	client := fetch.New(fetch.Options{SkipRobots: true, Delay: 1})
	ev, err := FetchDetail(context.Background(), client, SessionLink{ID: "9", URL: server.URL})
	if err != nil {
		t.Fatalf("FetchDetail failed: %v", err)
	}
	if ev.Date != "" || ev.Time != "" || ev.Location != "" {
		t.Errorf("missing labels must yield empty fields: %+v", ev)
	}
}

func TestExtract(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bi/info.asp", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<a href="si0057.asp?__ksinr=77">Bauausschuss</a>
<div>
<h2>Aktuelle Sitzungen</h2>
<p>01.02.2026</p><p>Bauausschuss</p><p>18:00 Uhr</p><p>Rathaus</p>
<p>03.02.2026</p><p>Ortsbeirat Nord</p><p>20:00 Uhr</p><p>Dorfhaus</p>
</div>
<p>Software: Session</p>
</body></html>`)
	})
	mux.HandleFunc("/bi/si0057.asp", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<p>Gremium</p><p>Bauausschuss</p>
<p>Datum</p><p>01.02.2026</p>
<p>Zeit</p><p>18:00 Uhr</p>
<p>Raum</p><p>Rathaus, Sitzungssaal</p>
</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := fetch.New(fetch.Options{SkipRobots: true, Delay: 1})
	src := New(client, server.URL+"/bi/info.asp", server.URL+"/bi/")

	events, err := src.Extract(context.Background())
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	// The text view of the Bauausschuss session must collapse into the
	// detail-linked record; the summary-only Ortsbeirat survives.
	if len(events) != 2 {
		t.Fatalf("expected 2 events after merge, got %d: %v", len(events), events)
	}
	if events[0].UID != "ksinr:77" {
		t.Errorf("detail record must win the merge, got %q", events[0].UID)
	}
	if events[1].Source != event.SourceText || events[1].Title != "Ortsbeirat Nord" {
		t.Errorf("summary-only record lost: %+v", events[1])
	}
}

func TestExtractInfoPageDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := fetch.New(fetch.Options{SkipRobots: true, Delay: 1})
	src := New(client, server.URL+"/bi/info.asp", server.URL+"/bi/")

	if _, err := src.Extract(context.Background()); err == nil {
		t.Error("unreachable info page must fail the source")
	}
}
