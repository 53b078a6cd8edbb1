package yahoo

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// http plumbing shared by every fetcher in this package.

// diskCache is a simple disk cache for HTTP responses. The cache key
// includes the current day, so every entry expires at midnight.
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	key := fmt.Sprintf("%s %s %s", time.Now().Format("2006-01-02"), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	if resp, err := c.get(key, req); err == nil {
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// Cache write failures are not worth failing the request over.
	c.put(key, resp)
	return resp, nil
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(os.TempDir(), key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(os.TempDir(), key))
	if err != nil {
		return err
	}
	_, err = f.Write(content)
	f.Close()
	return err
}

// newDailyCachingClient returns a client whose responses are cached on
// disk until the end of the day.
func newDailyCachingClient() *http.Client {
	return &http.Client{Transport: &diskCache{http.DefaultTransport}}
}

// jwget performs an HTTP GET request and unmarshals the JSON response
// into data.
func jwget(client *http.Client, addr string, data any) error {
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; pfs/1.0)")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
