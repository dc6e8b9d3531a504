package web_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/rfallows/campgrounds/internal/factory"
	"github.com/rfallows/campgrounds/internal/testutil"
	"github.com/rfallows/campgrounds/internal/web"
	"github.com/rfallows/campgrounds/internal/web/templates"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()

	renderer, err := templates.New()
	require.NoError(t, err)

	router := web.NewRouter(web.RouterConfig{
		Logger:            testutil.NopLogger(),
		Renderer:          renderer,
		AuthService:       app.AuthService,
		CampgroundService: app.CampgroundService,
		ReviewService:     app.ReviewService,
		Uploads:           app.Uploads,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil, "")
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded")
}

// testFile is a file part for a multipart submission
type testFile struct {
	Field    string
	Name     string
	Content  []byte
	MimeType string
}

// postMultipart makes a POST request with form fields and file parts
func (ts *webTestServer) postMultipart(path string, fields url.Values, files ...testFile) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for key, vals := range fields {
		for _, v := range vals {
			require.NoError(ts.t, mw.WriteField(key, v))
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.Field, f.Name)
		require.NoError(ts.t, err)
		_, err = part.Write(f.Content)
		require.NoError(ts.t, err)
	}
	require.NoError(ts.t, mw.Close())

	return ts.request(http.MethodPost, path, &buf, mw.FormDataContentType())
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// sessionToken returns the current session cookie value, if any
func (j *cookieJar) sessionToken() string {
	if c, ok := j.cookies["session"]; ok {
		return c.Value
	}
	return ""
}

// Helper functions for common test operations

// registerUser signs up a user through the web surface and leaves the
// jar holding their authenticated session
func (ts *webTestServer) registerUser(username string) {
	ts.t.Helper()
	rr := ts.post("/register", url.Values{
		"username": {username},
		"password": {"correct-horse-battery"},
	})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after registration")
	require.NotEmpty(ts.t, ts.cookies.sessionToken(), "Expected session cookie to be set")
}

// login signs an existing user in through the web surface
func (ts *webTestServer) login(username string) {
	ts.t.Helper()
	rr := ts.post("/login", url.Values{
		"username": {username},
		"password": {"correct-horse-battery"},
	})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after login")
}

// logout signs the current user out
func (ts *webTestServer) logout() {
	ts.t.Helper()
	rr := ts.post("/logout", nil)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after logout")
}

// createCampground submits the creation form and returns the new
// campground's id, extracted from the redirect target
func (ts *webTestServer) createCampground(title, location, price string, files ...testFile) string {
	ts.t.Helper()
	rr := ts.postMultipart("/campgrounds", url.Values{
		"title":       {title},
		"location":    {location},
		"price":       {price},
		"description": {"A lovely place to camp"},
	}, files...)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after campground creation")

	target := rr.Header().Get("Location")
	require.Contains(ts.t, target, "/campgrounds/", "Expected redirect to campground page")

	parts := strings.Split(target, "/campgrounds/")
	require.Len(ts.t, parts, 2, "Expected location to contain /campgrounds/{id}")
	return parts[1]
}

// createReview submits a review on a campground
func (ts *webTestServer) createReview(campgroundID, rating, body string) {
	ts.t.Helper()
	rr := ts.post("/campgrounds/"+campgroundID+"/reviews", url.Values{
		"rating": {rating},
		"body":   {body},
	})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after review creation")
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
