package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cppla/folio/middleware"
	"github.com/cppla/folio/utils"
)

// rejectCodes maps each gate reason to its business code.
var rejectCodes = map[utils.Reason]int{
	utils.ReasonDisallowed: 42201,
	utils.ReasonTooShort:   42202,
	utils.ReasonTooLong:    42203,
}

// submitter runs the evaluating step shared by every gated form.
type submitter struct {
	gate  *utils.Gate
	delay time.Duration
}

// evaluate holds the session's single submission slot, waits out the artificial
// processing delay and returns the sanitized body with its gate verdict. ok is
// false when a response has already been written (busy session or cancelled request).
func (s submitter) evaluate(ctx *gin.Context, sess *utils.Session, raw string) (body string, verdict utils.Verdict, ok bool) {
	if !sess.BeginSubmission() {
		utils.Error(ctx, http.StatusConflict, 40901, "a submission is already being processed")
		return "", utils.Verdict{}, false
	}
	defer sess.EndSubmission()

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Request.Context().Done():
			ctx.Abort()
			return "", utils.Verdict{}, false
		}
	}
	body, verdict = s.gate.EvaluateSubmission(raw)
	return body, verdict, true
}

// respondRejected surfaces the rejection reason to the visitor.
func respondRejected(ctx *gin.Context, v utils.Verdict) {
	utils.Rejected(ctx, rejectCodes[v.Reason], v)
}

func currentSession(ctx *gin.Context) (*utils.Session, bool) {
	sess, ok := middleware.CurrentSession(ctx)
	if !ok {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "session unavailable")
		return nil, false
	}
	return sess, true
}

func parseIndex(raw string) (int, bool) {
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return page, size
}
