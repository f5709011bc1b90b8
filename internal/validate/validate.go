// Package validate holds the request validators that run before any store
// access. Every function is pure: it inspects raw request input and returns
// either a typed value or a classified *apperr.Error describing why the
// input was rejected.
package validate

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"golang.org/x/text/cases"

	"github.com/tbourn/go-news-api/internal/apperr"
	"github.com/tbourn/go-news-api/internal/domain"
)

var (
	digitsRE   = regexp.MustCompile(`^[0-9]+$`)
	usernameRE = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)
)

// Payload messages for PATCH /articles/:article_id.
const (
	MsgMissingIncVotes = "missing inc_votes"
	MsgNotObject       = "request body must be a JSON object"
	MsgMalformedJSON   = "request body is not valid JSON"
	MsgIncVotesNumber  = "inc_votes must be a number"
	MsgIncVotesInteger = "inc_votes must be an integer"
	MsgIncVotesRange   = "inc_votes out of range"
)

// MaxVoteDelta bounds the magnitude of a single inc_votes so votes + delta
// stays an integer in the store.
const MaxVoteDelta = math.MaxInt32

// Query messages for GET /articles.
const (
	MsgSortByInvalid = "sort_by not valid"
	MsgOrderInvalid  = "order not valid"
)

// IDParam parses raw as a canonical non-negative decimal id. Anything with a
// sign, whitespace, a fraction, or a value outside int64 is rejected with a
// BadIdentifier error naming field.
func IDParam(field, raw string) (int64, error) {
	if !digitsRE.MatchString(raw) {
		return 0, apperr.BadIdentifier(field)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.BadIdentifier(field)
	}
	return n, nil
}

// Username checks the shape of a username path segment.
func Username(raw string) (string, error) {
	if !usernameRE.MatchString(raw) {
		return "", apperr.BadIdentifier("username")
	}
	return raw, nil
}

// VotePayload extracts inc_votes from a PATCH body. Fields other than
// inc_votes are ignored. The delta must lie within ±MaxVoteDelta.
func VotePayload(body []byte) (int64, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return 0, apperr.InvalidPayload(MsgMissingIncVotes)
	}
	if !json.Valid(trimmed) {
		return 0, apperr.InvalidPayload(MsgMalformedJSON)
	}
	if trimmed[0] != '{' {
		return 0, apperr.InvalidPayload(MsgNotObject)
	}

	var fields map[string]json.RawMessage
	if err := binding.JSON.BindBody(trimmed, &fields); err != nil {
		return 0, apperr.InvalidPayload(MsgNotObject)
	}
	raw, ok := fields["inc_votes"]
	if !ok {
		return 0, apperr.InvalidPayload(MsgMissingIncVotes)
	}
	n, err := incVotes(raw)
	if err != nil {
		return 0, err
	}
	if n > MaxVoteDelta || n < -MaxVoteDelta {
		return 0, apperr.InvalidPayload(MsgIncVotesRange)
	}
	return n, nil
}

// incVotes accepts any JSON number with an integral value in int64 range,
// so 5 and 5.0 are both a delta of 5.
func incVotes(raw json.RawMessage) (int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return 0, apperr.InvalidPayload(MsgIncVotesNumber)
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return 0, apperr.InvalidPayload(MsgIncVotesNumber)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, apperr.InvalidPayload(MsgIncVotesInteger)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, apperr.InvalidPayload(MsgIncVotesInteger)
	}
	return int64(f), nil
}

// foldKey normalizes a query value for comparison. A Caser carries state, so
// one is created per call.
func foldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// ArticleQuery builds a listing filter from the topic, sort_by and order
// query values. Empty values fall back to created_at descending.
func ArticleQuery(topic, sortBy, order string) (domain.ArticleFilter, error) {
	f := domain.ArticleFilter{
		Topic:  strings.TrimSpace(topic),
		SortBy: domain.SortCreatedAt,
		Desc:   true,
	}

	if s := foldKey(sortBy); s != "" {
		switch s {
		case domain.SortArticleID, domain.SortTitle, domain.SortTopic, domain.SortAuthor,
			domain.SortCreatedAt, domain.SortVotes, domain.SortCommentCount:
			f.SortBy = s
		default:
			return domain.ArticleFilter{}, apperr.InvalidQuery(MsgSortByInvalid)
		}
	}

	switch foldKey(order) {
	case "", "desc":
		f.Desc = true
	case "asc":
		f.Desc = false
	default:
		return domain.ArticleFilter{}, apperr.InvalidQuery(MsgOrderInvalid)
	}
	return f, nil
}
