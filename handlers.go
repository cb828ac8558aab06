package main

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"essaydesk/internal/export"
	"essaydesk/internal/store"
	"essaydesk/internal/textstats"
	"essaydesk/internal/types"
)

// indexHandler renders the empty editor page.
func (app *App) indexHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title": pageTitle,
	})
}

// correctHandler corrects the submitted essay and re-renders the editor with
// both texts. Clients asking for JSON get a CorrectionResponse instead.
func (app *App) correctHandler(c *gin.Context) {
	ctx := c.Request.Context()
	original := c.PostForm("text")
	wantsJSON := c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON

	renderError := func(status int, errMsg string) {
		if wantsJSON {
			c.JSON(status, gin.H{"error": errMsg})
			return
		}
		c.HTML(status, "index.html", gin.H{
			"title":         pageTitle,
			"original_text": original,
			"error":         errMsg,
		})
	}

	if strings.TrimSpace(original) == "" {
		renderError(http.StatusBadRequest, ErrorNoText)
		return
	}

	start := time.Now()
	corrected, err := app.Corrector.Correct(ctx, original)
	if err != nil {
		logError("%sCorrection failed: %v", requestTag(ctx), err)
		renderError(http.StatusBadGateway, ErrorCorrectionFailed)
		return
	}
	logInfo("%sCorrected %d words in %v", requestTag(ctx), textstats.WordCount(original), time.Since(start))

	if wantsJSON {
		c.JSON(http.StatusOK, types.CorrectionResponse{Original: original, Corrected: corrected})
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":          pageTitle,
		"original_text":  original,
		"corrected_text": corrected,
	})
}

// saveHandler corrects and stores an essay with its writing stats.
func (app *App) saveHandler(c *gin.Context) {
	ctx := c.Request.Context()
	original := c.PostForm("text")
	if strings.TrimSpace(original) == "" {
		c.JSON(http.StatusBadRequest, types.SaveResponse{Error: ErrorNoText})
		return
	}
	sessionID := app.getOrCreateSession(c)
	words, paragraphs := textstats.Counts(original)
	stats := types.Stats{
		WordCount:      formInt(c, "wordCount", words),
		ParagraphCount: formInt(c, "paragraphCount", paragraphs),
		BackspaceCount: formInt(c, "backspaceCount", 0),
	}

	corrected, err := app.Corrector.Correct(ctx, original)
	if err != nil {
		logError("%sCorrection before save failed: %v", requestTag(ctx), err)
		c.JSON(http.StatusBadGateway, types.SaveResponse{Error: ErrorCorrectionFailed})
		return
	}

	id, err := app.Store.Insert(ctx, types.Essay{
		OriginalText:  original,
		CorrectedText: corrected,
		SessionID:     sessionID,
		Timestamp:     time.Now(),
		Stats:         stats,
	})
	if err != nil {
		logError("%sError saving to database: %v", requestTag(ctx), err)
		c.JSON(http.StatusInternalServerError, types.SaveResponse{Error: ErrorSaveFailed})
		return
	}
	logInfo("%sSaved essay %d for session %s (%d words, %d paragraphs, %d backspaces)",
		requestTag(ctx), id, sessionID, stats.WordCount, stats.ParagraphCount, stats.BackspaceCount)
	c.JSON(http.StatusOK, types.SaveResponse{Message: MessageSaved, ID: id})
}

// historyHandler lists essays saved within the last `minutes` minutes, or,
// for minutes=-1, those older than the default window.
func (app *App) historyHandler(c *gin.Context) {
	ctx := c.Request.Context()
	minutes := parseHistoryMinutes(c.Query("minutes"))
	q := historyQuery(minutes, time.Now())

	scope := c.DefaultQuery("scope", "all")
	var essays []types.Essay
	if scope == "session" {
		q.SessionID = currentSession(c)
	}
	if scope != "session" || q.SessionID != "" {
		var err error
		essays, err = app.Store.List(ctx, q)
		if err != nil {
			logError("%sFailed to list essays: %v", requestTag(ctx), err)
			c.String(http.StatusInternalServerError, "Could not load history.")
			return
		}
	}

	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusOK, gin.H{"essays": essays, "minutes": minutes})
		return
	}
	entries := lo.Map(essays, func(e types.Essay, _ int) historyEntry {
		return historyEntry{Essay: e, Excerpt: excerpt(e.CorrectedText, 160)}
	})
	c.HTML(http.StatusOK, "history.html", gin.H{
		"title":            pageTitle + " - History",
		"essays":           entries,
		"selected_minutes": minutes,
		"scope":            scope,
	})
}

// downloadHandler streams a stored essay as a PDF attachment.
func (app *App) downloadHandler(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, ErrorInvalidEssayID)
		return
	}
	essay, err := app.Store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		c.String(http.StatusNotFound, ErrorEssayNotFound)
		return
	}
	if err != nil {
		logError("%sFailed to load essay %d: %v", requestTag(ctx), id, err)
		c.String(http.StatusInternalServerError, "Could not load essay.")
		return
	}

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, essay, export.WithUTF8Font(app.PDFFont)); err != nil {
		logError("%sFailed to render PDF for essay %d: %v", requestTag(ctx), id, err)
		c.String(http.StatusInternalServerError, "Could not render essay.")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(id)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	status, essays := "ok", 0
	n, err := app.Store.Count(c.Request.Context())
	if err != nil {
		logWarn("Health check could not count essays: %v", err)
		status = "degraded"
	} else {
		essays = n
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"env":       map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"essays":    essays,
		"corrector": app.Corrector.Name(),
		"uptime":    formatUptime(time.Since(app.StartTime)),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// formInt reads a non-negative integer form field, returning fallback when it
// is missing or malformed.
func formInt(c *gin.Context, key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.PostForm(key)))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// maxHistoryMinutes is the widest window, about 292 years.
const maxHistoryMinutes = int(math.MaxInt64 / int64(time.Minute))

func parseHistoryMinutes(raw string) int {
	if raw == "" {
		return DefaultHistoryMinutes
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultHistoryMinutes
	}
	return clampHistoryMinutes(minutes)
}

// clampHistoryMinutes keeps minutes within what a time.Duration can hold.
func clampHistoryMinutes(minutes int) int {
	return min(max(minutes, -maxHistoryMinutes), maxHistoryMinutes)
}

func historyQuery(minutes int, now time.Time) store.Query {
	if minutes == HistoryOlderMinutes {
		return store.Query{Cutoff: now.Add(-DefaultHistoryMinutes * time.Minute), Before: true}
	}
	return store.Query{Cutoff: now.Add(-time.Duration(clampHistoryMinutes(minutes)) * time.Minute)}
}
