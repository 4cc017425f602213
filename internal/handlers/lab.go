package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"studyfortress/internal/auth"
	"studyfortress/internal/catalog"
	"studyfortress/internal/platform/logger"
	"studyfortress/internal/workspace"
	"studyfortress/views/pages"
)

// LabOptions tunes the lab routes.
type LabOptions struct {
	MaxUpload      int64
	RequestTimeout time.Duration
	KeepAlive      time.Duration
}

type LabHandler struct {
	store *workspace.Store
	cat   *catalog.Catalog
	auth  *auth.Service
	log   *logger.Logger
	opts  LabOptions
	now   func() time.Time
}

func NewLabHandler(store *workspace.Store, cat *catalog.Catalog, svc *auth.Service, opts LabOptions, log *logger.Logger) *LabHandler {
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = 20 << 20
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 15 * time.Second
	}
	if opts.KeepAlive <= 0 {
		opts.KeepAlive = 25 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LabHandler{
		store: store,
		cat:   cat,
		auth:  svc,
		log:   log,
		opts:  opts,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (h *LabHandler) RegisterRoutes(r chi.Router) {
	r.Route("/lab/{folder}", func(r chi.Router) {
		r.Use(h.auth.Require)
		r.Get("/stream", h.stream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(h.opts.RequestTimeout))
			r.Get("/", h.labPage)
			r.Post("/view", h.setView)

			r.Get("/sidebar", h.sidebarFragment)
			r.Post("/sidebar/view", h.setSidebarView)
			r.Post("/sidebar/toggle", h.toggleSidebar)

			r.Post("/canvas/pan", h.pan)
			r.Post("/canvas/zoom", h.zoom)
			r.Post("/canvas/grab", h.grab)
			r.Post("/canvas/drag", h.drag)
			r.Post("/canvas/drop", h.drop)
			r.Post("/canvas/organize", h.organize)

			r.Post("/panels", h.addPanel)
			r.Route("/panels/{panel}/tabs", func(r chi.Router) {
				r.Post("/", h.addTab)
				r.Post("/{tab}/select", h.selectTab)
				r.Post("/{tab}/remove", h.removeTab)
				r.Post("/{tab}/rename", h.renameTab)
				r.Post("/{tab}/color", h.recolorTab)
				r.Post("/{tab}/duplicate", h.duplicateTab)
				r.Post("/{tab}/minimize", h.minimizeTab)
				r.Post("/{tab}/nest", h.nestTab)
			})
			r.Post("/pdf", h.uploadPDF)

			r.Post("/items/{item}/tags", h.addTag)
			r.Post("/items/{item}/tags/remove", h.removeTag)

			r.Post("/recordings/start", h.startRecording)
			r.Post("/recordings/stop", h.stopRecording)
			r.Post("/recordings/{rec}/play", h.playRecording)

			r.Post("/mindmap/nodes", h.addNode)
			r.Post("/mindmap/nodes/{node}", h.updateNode)
			r.Post("/mindmap/nodes/{node}/delete", h.deleteNode)
			r.Post("/mindmap/connections", h.connect)

			r.Post("/study/open", h.openStudy)
			r.Post("/study/select", h.selectStudyItem)
			r.Post("/study/method", h.setStudyMethod)
			r.Post("/study/start", h.startStudy)
			r.Post("/study/reveal", h.revealAnswer)
			r.Post("/study/answer", h.answer)
			r.Post("/study/exit", h.exitStudy)
		})
	})
}

// lab is the workspace a request acts on. folder is the resolved id the
// store keys it under; base keeps the requested path.
type lab struct {
	user   auth.User
	folder string
	base   string
	ws     *workspace.Workspace
}

func (h *LabHandler) open(r *http.Request) lab {
	user, _ := auth.UserFrom(r.Context())
	folder := chi.URLParam(r, "folder")
	ws := h.store.Open(user.ID, folder)
	return lab{
		user:   user,
		folder: ws.FolderID,
		base:   "/lab/" + folder,
		ws:     ws,
	}
}

// done publishes events after a successful change and answers the request.
func (h *LabHandler) done(w http.ResponseWriter, r *http.Request, l lab, err error, events ...string) {
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	h.store.Publish(l.user.ID, l.folder, events...)
	finish(w, r, l.base)
}

func (h *LabHandler) present(l lab) presenter {
	now := h.now()
	return newPresenter(l.ws.Snapshot(now), l.base, now)
}

func (h *LabHandler) labPage(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	data := h.present(l).lab(l.ws.FolderName+" | Study Fortress", l.user.Email)
	render(w, r, pages.LabPage(data))
}

func (h *LabHandler) setView(w http.ResponseWriter, r *http.Request) {
	l := h.open(r)
	err := l.ws.SetViewMode(workspace.ViewMode(r.FormValue("mode")))
	if err != nil {
		fail(w, r, h.log, err)
		return
	}
	// The main slot changes shape, so the page is reloaded rather than swapped.
	if isHX(r) {
		w.Header().Set("Hx-Refresh", "true")
	}
	finish(w, r, l.base)
}
