package web_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateReviewShowsOnCampgroundPage(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("uma")
	id := ts.createCampground("Pine Ridge", "Blue Mountains", "25")

	ts.logout()
	ts.registerUser("vera")
	ts.createReview(id, "4", "Great spot")

	rr := ts.get("/campgrounds/" + id)
	doc := parseHTML(rr.Body)
	require.Equal(t, 1, doc.Find(".review").Length())
	assertContainsText(t, doc, ".review .rating", "4/5")
	assertContainsText(t, doc, ".review .body", "Great spot")
	assertContainsText(t, doc, ".review .author", "vera")

	// The author sees their delete control
	assertContainsElement(t, doc, ".delete-review-form")

	// The campground owner does not; the review is not theirs
	ts.logout()
	ts.login("uma")
	rr = ts.get("/campgrounds/" + id)
	doc = parseHTML(rr.Body)
	assertNotContainsElement(t, doc, ".delete-review-form")
}

func TestCreateReviewRequiresAuth(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("uma")
	id := ts.createCampground("Pine Ridge", "Blue Mountains", "25")
	ts.logout()

	rr := ts.post("/campgrounds/"+id+"/reviews", url.Values{
		"rating": {"4"},
		"body":   {"Great spot"},
	})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.True(t, strings.HasPrefix(rr.Header().Get("Location"), "/login?next="))
}

func TestCreateReviewValidation(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("uma")
	id := ts.createCampground("Pine Ridge", "Blue Mountains", "25")

	cases := []url.Values{
		{"rating": {"6"}, "body": {"Too good"}},
		{"rating": {"0"}, "body": {"Too harsh"}},
		{"rating": {"4"}},
		{"rating": {"nope"}, "body": {"Words"}},
		{"rating": {"3.5"}, "body": {"Halves not allowed"}},
	}
	for _, form := range cases {
		rr := ts.post("/campgrounds/"+id+"/reviews", form)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		doc := parseHTML(rr.Body)
		assertContainsElement(t, doc, ".violations li")
	}

	// None of the rejected submissions left a review behind
	rr := ts.get("/campgrounds/" + id)
	doc := parseHTML(rr.Body)
	require.Equal(t, 0, doc.Find(".review").Length())
}

func TestCreateReviewOnMissingCampground(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("uma")

	rr := ts.post("/campgrounds/no-such-id/reviews", url.Values{
		"rating": {"4"},
		"body":   {"Great spot"},
	})
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteReviewOnlyByAuthor(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("uma")
	id := ts.createCampground("Pine Ridge", "Blue Mountains", "25")

	ts.logout()
	ts.registerUser("vera")
	ts.createReview(id, "4", "Great spot")

	rr := ts.get("/campgrounds/" + id)
	doc := parseHTML(rr.Body)
	action, ok := doc.Find(".delete-review-form").Attr("action")
	require.True(t, ok)

	// The campground owner cannot remove someone else's review
	ts.logout()
	ts.login("uma")
	rr = ts.post(action, nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/campgrounds/"+id, rr.Header().Get("Location"))

	rr = ts.followRedirect(rr)
	doc = parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-error", "You do not have permission to do that")
	require.Equal(t, 1, doc.Find(".review").Length())

	// The author can
	ts.logout()
	ts.login("vera")
	rr = ts.post(action, nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	rr = ts.followRedirect(rr)
	doc = parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash-success", "Successfully deleted review")
	require.Equal(t, 0, doc.Find(".review").Length())
}

func TestDeleteReviewUnderWrongCampgroundIsNotFound(t *testing.T) {
	ts := newWebTestServer(t)
	ts.registerUser("uma")
	first := ts.createCampground("Pine Ridge", "Blue Mountains", "25")
	second := ts.createCampground("River Bend", "Snowy Valley", "40")

	ts.createReview(first, "5", "Lovely")

	rr := ts.get("/campgrounds/" + first)
	doc := parseHTML(rr.Body)
	action, ok := doc.Find(".delete-review-form").Attr("action")
	require.True(t, ok)

	// Rewrite the path to point at the sibling campground
	wrongAction := strings.Replace(action, first, second, 1)
	rr = ts.post(wrongAction, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	// The review is still in place under its real parent
	rr = ts.get("/campgrounds/" + first)
	doc = parseHTML(rr.Body)
	require.Equal(t, 1, doc.Find(".review").Length())
}
