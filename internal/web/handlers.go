package web

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/medusa-ai/forge/internal/config"
	"github.com/medusa-ai/forge/internal/errors"
	"github.com/medusa-ai/forge/internal/ops"
	"github.com/medusa-ai/forge/internal/prompt"
	"github.com/medusa-ai/forge/internal/share"
)

// emptyIdeaMessage is shown inline when the idea field is blank.
const emptyIdeaMessage = "Please enter your idea first."

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	deps     ops.Deps
	cfg      *config.Config
	renderer *Renderer
	legal    fs.FS
}

// generatorPage builds the generator page data for form.
func (h *Handlers) generatorPage(form FormState) GeneratorPageData {
	return GeneratorPageData{
		PageData: PageData{
			Title:   "Generator",
			Version: h.renderer.version,
			Nav:     "generator",
		},
		Tools:      prompt.Tools(),
		Styles:     prompt.Styles(),
		Categories: prompt.Categories(),
		Form:       form,
		Template:   prompt.Lookup(form.Tool),
	}
}

// HandleIndex handles GET / — the generator.
// ?share= seeds the page from a share token and asks the script to drop the
// parameter; malformed tokens are ignored. ?entry= seeds from history.
// ?tool= switches the tool and resets its options.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	form := FormState{Tool: prompt.ToolImage, Style: prompt.StyleNone, Category: prompt.CategoryNone}
	var result *ResultData
	cleanURL := ""

	switch {
	case q.Has(share.Param):
		cleanURL = r.URL.Path
		if state, ok := ops.OpenShared(q.Get(share.Param)); ok {
			form = formFromState(state)
			result = resultFor(form, state.Prompt, 0)
		}

	case q.Get("entry") != "":
		state, err := ops.UseEntry(h.deps.History, q.Get("entry"))
		if err != nil {
			log.Printf("web: ignoring entry %q: %v", q.Get("entry"), err)
			break
		}
		form = formFromState(*state)
		result = resultFor(form, state.Prompt, 0)

	default:
		if tool, err := prompt.ParseTool(q.Get("tool")); err == nil {
			form.Tool = tool
		}
		form.Idea = q.Get("idea")
	}

	data := h.generatorPage(form)
	data.Result = result
	data.CleanURL = cleanURL
	h.renderer.renderPage(w, r, "generator", data)
}

// HandleEnhance handles POST /enhance.
func (h *Handlers) HandleEnhance(w http.ResponseWriter, r *http.Request) {
	h.handleGenerate(w, r, ops.Enhance)
}

// HandleRegenerate handles POST /regenerate — a fresh attempt with the same inputs.
func (h *Handlers) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	h.handleGenerate(w, r, ops.Regenerate)
}

type generateFunc func(ctx context.Context, deps ops.Deps, input ops.EnhanceInput) (*ops.EnhanceOutput, error)

// handleGenerate parses the generator form, runs gen, and renders the result
// as an htmx fragment, JSON, or the full page.
func (h *Handlers) handleGenerate(w http.ResponseWriter, r *http.Request, gen generateFunc) {
	form, err := parseForm(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if strings.TrimSpace(form.Idea) == "" {
		if !isHTMX(r) && wantsJSON(r) {
			h.renderer.renderError(w, r, errors.NewInvalidRequest("idea required"))
			return
		}
		h.renderResult(w, r, http.StatusBadRequest, &ResultData{FormState: form, Invalid: emptyIdeaMessage})
		return
	}

	out, err := gen(r.Context(), h.deps, ops.EnhanceInput{
		Idea:    form.Idea,
		Tool:    form.Tool,
		Options: prompt.Options{Style: form.Style, Category: form.Category},
	})
	if err != nil {
		// A newer request owns the result area; leave it alone.
		if errors.Is(err, errors.ErrStaleRequest) && isHTMX(r) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if wantsJSON(r) && !isHTMX(r) {
			h.renderer.renderError(w, r, err)
			return
		}
		fErr := errors.As(err)
		if fErr == nil {
			fErr = errors.NewInternal(err)
		}
		h.renderResult(w, r, fErr.Status, &ResultData{FormState: form, Failure: fErr.Message})
		return
	}

	if wantsJSON(r) && !isHTMX(r) {
		renderJSON(w, http.StatusOK, out)
		return
	}
	h.renderResult(w, r, http.StatusOK, resultFor(form, out.Prompt, out.Seq))
}

// renderResult renders the result block for htmx or the whole generator page.
func (h *Handlers) renderResult(w http.ResponseWriter, r *http.Request, status int, result *ResultData) {
	if isHTMX(r) {
		h.renderer.renderBlock(w, status, "generator", "result", result)
		return
	}
	data := h.generatorPage(result.FormState)
	data.Result = result
	h.renderer.renderPageStatus(w, r, status, "generator", data)
}

// HandleShare handles POST /share — build a share link for the current result.
func (h *Handlers) HandleShare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	input := ops.ShareInput{
		Idea:     r.FormValue("idea"),
		Prompt:   r.FormValue("prompt"),
		Tool:     r.FormValue("tool"),
		Style:    r.FormValue("style"),
		Category: r.FormValue("category"),
	}
	out, err := ops.ShareLink(h.shareBase(r), input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	if isHTMX(r) {
		h.renderer.renderBlock(w, http.StatusOK, "generator", "share", out)
		return
	}
	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, out)
		return
	}

	form, err := parseForm(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	data := h.generatorPage(form)
	data.Result = resultFor(form, input.Prompt, 0)
	data.Share = out
	h.renderer.renderPage(w, r, "generator", data)
}

// HandleHistory handles GET /history — list past generations.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	result := ops.ListHistory(h.deps.History, ops.ListHistoryInput{
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	})

	if wantsJSON(r) && !isHTMX(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	h.renderer.renderPage(w, r, "history", HistoryPageData{
		PageData: PageData{
			Title:   "History",
			Version: h.renderer.version,
			Nav:     "history",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
	})
}

// HandleClearHistory handles POST /history/clear — remove every entry.
func (h *Handlers) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	result, err := ops.ClearHistory(r.Context(), h.deps.History)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// htmx request: redirect via HX-Redirect header
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/history")
		w.WriteHeader(http.StatusOK)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/history", http.StatusFound)
}

// legalPages maps page slugs to their titles.
var legalPages = map[string]string{
	"about":   "About Medusa AI",
	"privacy": "Privacy Policy",
	"terms":   "Terms of Use",
}

// HandleLegal handles GET /legal/{page} — about, privacy and terms.
func (h *Handlers) HandleLegal(w http.ResponseWriter, r *http.Request) {
	page := r.PathValue("page")
	title, ok := legalPages[page]
	if !ok {
		h.renderer.renderError(w, r, errors.NewPageNotFound(page))
		return
	}

	md, err := fs.ReadFile(h.legal, page+".md")
	if err != nil {
		h.renderer.renderError(w, r, errors.NewInternal(err))
		return
	}

	h.renderer.renderPage(w, r, "legal", LegalPageData{
		PageData: PageData{
			Title:   title,
			Version: h.renderer.version,
		},
		Body: renderMarkdown(string(md)),
	})
}

// shareBase returns the origin and generator path share links point at.
// A configured public URL wins over the request host.
func (h *Handlers) shareBase(r *http.Request) string {
	if h.cfg.PublicURL != "" {
		return h.cfg.ShareBaseURL()
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}

// parseForm reads the generator fields. The tool is required; style and
// category are validated and reset when they do not apply to the tool.
func parseForm(r *http.Request) (FormState, error) {
	if err := r.ParseForm(); err != nil {
		return FormState{}, errors.NewInvalidRequest("invalid form data")
	}
	tool, err := prompt.ParseTool(r.FormValue("tool"))
	if err != nil {
		return FormState{}, err
	}
	opts, err := prompt.ParseOptions(tool, r.FormValue("style"), r.FormValue("category"))
	if err != nil {
		return FormState{}, err
	}
	return FormState{
		Idea:     r.FormValue("idea"),
		Tool:     tool,
		Style:    opts.Style,
		Category: opts.Category,
	}, nil
}

func formFromState(s share.State) FormState {
	opts := prompt.Options{Style: s.Style, Category: s.Category}.Normalize(s.Tool)
	return FormState{Idea: s.Idea, Tool: s.Tool, Style: opts.Style, Category: opts.Category}
}

// resultFor builds the result area for a generated prompt.
// Website briefs are structured markdown and are rendered as such.
func resultFor(form FormState, text string, seq uint64) *ResultData {
	res := &ResultData{FormState: form, Prompt: text, Seq: seq}
	if form.Tool == prompt.ToolWebsite {
		res.Rendered = renderMarkdown(text)
	}
	return res
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
