package errors

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type of problem documents.
const ContentTypeProblemJSON = "application/problem+json"

// Responder writes problem documents, prefixing relative types with BaseURI.
type Responder struct {
	BaseURI string
}

func NewResponder(baseURI string) *Responder {
	return &Responder{BaseURI: baseURI}
}

// Respond writes problem, defaulting the instance to the request path.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError writes err as-is when it already is a ProblemDetail, otherwise as a 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}

// TooManyRequests writes a 429 with a Retry-After hint in whole seconds and aborts the chain.
func (r *Responder) TooManyRequests(c *gin.Context, detail string, retryAfter time.Duration) {
	if retryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
	}
	r.Respond(c, ErrTooManyRequests.WithDetail(detail))
	c.Abort()
}

// ErrorMapper turns an application error into a problem when it recognises it.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder consults mappers in order before the default handling.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{Responder: NewResponder(baseURI), mappers: mappers}
}

func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err)
}
