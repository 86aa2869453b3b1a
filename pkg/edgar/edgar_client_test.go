package edgar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const atomFixture = `<?xml version="1.0" encoding="ISO-8859-1" ?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Latest Filings - Mon, 24 Jun 2024 12:00:00 EDT</title>
  <entry>
    <title>8-K - INFOSYS LTD (0001067491) (Filer)</title>
    <link rel="alternate" type="text/html" href="https://www.sec.gov/Archives/edgar/data/1067491/000106749124000045-index.htm"/>
    <summary type="html">Material cybersecurity incident under investigation</summary>
    <updated>2024-06-24T10:15:00-04:00</updated>
    <id>urn:tag:sec.gov,2008:accession-number=0001067491-24-000045</id>
  </entry>
  <entry>
    <title>8-K - ACME CORP (0000123456) (Filer)</title>
    <link rel="alternate" type="text/html" href="https://www.sec.gov/Archives/edgar/data/123456/000012345624000001-index.htm"/>
    <summary type="html">Results of operations</summary>
    <updated>2024-06-23T09:00:00-04:00</updated>
    <id>urn:tag:sec.gov,2008:accession-number=0000123456-24-000001</id>
  </entry>
</feed>`

func Test_RecentFilings(t *testing.T) {
	t.Run("parses atom entries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "esgrank test agent", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/atom+xml")
			_, err := w.Write([]byte(atomFixture))
			require.NoError(t, err)
		}))
		defer server.Close()

		client := Client{
			UserAgent: "esgrank test agent",
			FeedUrl:   server.URL,
		}

		filings, err := client.RecentFilings(context.Background())
		require.NoError(t, err)
		require.Len(t, filings, 2)

		require.Equal(t, "8-K - INFOSYS LTD (0001067491) (Filer)", filings[0].Title)
		require.Equal(t, "Material cybersecurity incident under investigation", filings[0].Summary)
		require.Equal(t, "https://www.sec.gov/Archives/edgar/data/1067491/000106749124000045-index.htm", filings[0].Link)
		require.Equal(t, "2024-06-24", filings[0].Date)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		client := Client{
			UserAgent: "esgrank test agent",
			FeedUrl:   server.URL,
		}

		_, err := client.RecentFilings(context.Background())
		require.Error(t, err)
	})
}
