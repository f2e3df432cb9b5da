package spycatagency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"spycatagency/internal/metrics"
	"spycatagency/internal/models"
	"spycatagency/internal/myerrors"
	"spycatagency/internal/repositories"
	"spycatagency/internal/services"
	"spycatagency/pkg/catapi"

	"github.com/gin-gonic/gin"
)

var Endpoints = struct {
	CatCreate   string
	CatGet      string
	CatGetAll   string
	CatUpdate   string
	CatDelete   string
	CatMissions string

	MissionCreate string
	MissionGet    string
	MissionGetAll string
	MissionAssign string
	MissionDelete string

	TargetComplete string
	NoteCreate     string
	NoteUpdate     string

	Metrics string
}{
	CatCreate:   "/cats",
	CatGet:      "/cats/:id",
	CatGetAll:   "/cats",
	CatUpdate:   "/cats/:id",
	CatDelete:   "/cats/:id",
	CatMissions: "/cats/:id/missions",

	MissionCreate: "/missions",
	MissionGet:    "/missions/:id",
	MissionGetAll: "/missions",
	MissionAssign: "/missions/:id/assign/:catId",
	MissionDelete: "/missions/:id",

	TargetComplete: "/targets/:id",
	NoteCreate:     "/targets/:id/notes",
	NoteUpdate:     "/targets/:id/notes",

	Metrics: "/metrics",
}

type Server struct {
	router         *gin.Engine
	httpServer     *http.Server
	logger         *slog.Logger
	catService     services.CatService
	missionService services.MissionService
}

func NewServer(logger *slog.Logger, catService services.CatService, missionService services.MissionService, mets *metrics.Metrics) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		router:         router,
		httpServer:     &http.Server{Handler: router},
		logger:         logger,
		catService:     catService,
		missionService: missionService,
	}
	router.Use(server.requestLogger())
	if mets != nil {
		router.Use(mets.Middleware())
		router.GET(Endpoints.Metrics, gin.WrapH(mets.Handler()))
	}

	router.POST(Endpoints.CatCreate, server.handleAddCat)
	router.GET(Endpoints.CatGet, server.handleGetCat)
	router.GET(Endpoints.CatGetAll, server.handleGetAllCats)
	router.PATCH(Endpoints.CatUpdate, server.handleUpdateCat)
	router.DELETE(Endpoints.CatDelete, server.handleDeleteCat)
	router.GET(Endpoints.CatMissions, server.handleGetCatMissions)

	router.POST(Endpoints.MissionCreate, server.handleAddMission)
	router.GET(Endpoints.MissionGet, server.handleGetMission)
	router.GET(Endpoints.MissionGetAll, server.handleGetAllMissions)
	router.PUT(Endpoints.MissionAssign, server.handleAssignMission)
	router.DELETE(Endpoints.MissionDelete, server.handleDeleteMission)

	router.PATCH(Endpoints.TargetComplete, server.handleCompleteTarget)
	router.POST(Endpoints.NoteCreate, server.handleCreateNote)
	router.PATCH(Endpoints.NoteUpdate, server.handleUpdateNote)
	return server
}

func (s *Server) handleAddCat(ctx *gin.Context) {
	var cat models.Cat
	if err := ctx.ShouldBindJSON(&cat); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}

	newCat, err := s.catService.Add(ctx, cat)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newCat)
}

func (s *Server) handleGetCat(ctx *gin.Context) {
	id, ok := s.idParam(ctx, "id")
	if !ok {
		return
	}
	cat, err := s.catService.GetById(ctx, id)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cat)
}

func (s *Server) handleGetAllCats(ctx *gin.Context) {
	var query models.PaginationQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	cats, err := s.catService.GetAll(ctx, query)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cats)
}

func (s *Server) handleUpdateCat(ctx *gin.Context) {
	id, ok := s.idParam(ctx, "id")
	if !ok {
		return
	}
	var update models.CatUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	updatedCat, err := s.catService.Update(ctx, id, update)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, updatedCat)
}

func (s *Server) handleDeleteCat(ctx *gin.Context) {
	id, ok := s.idParam(ctx, "id")
	if !ok {
		return
	}
	if err := s.catService.DeleteById(ctx, id); err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (s *Server) handleGetCatMissions(ctx *gin.Context) {
	id, ok := s.idParam(ctx, "id")
	if !ok {
		return
	}
	missions, err := s.catService.GetMissions(ctx, id)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, missions)
}

func (s *Server) handleAddMission(ctx *gin.Context) {
	var create models.MissionCreate
	if err := ctx.ShouldBindJSON(&create); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "invalid mission payload: " + err.Error(),
		})
		return
	}
	savedMission, err := s.missionService.Add(ctx, create)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, savedMission)
}

func (s *Server) handleGetMission(ctx *gin.Context) {
	id, ok := s.idParam(ctx, "id")
	if !ok {
		return
	}
	mission, err := s.missionService.GetById(ctx, id)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mission)
}

func (s *Server) handleGetAllMissions(ctx *gin.Context) {
	var query models.PaginationQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	missions, err := s.missionService.GetAll(ctx, query)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, missions)
}

func (s *Server) handleAssignMission(ctx *gin.Context) {
	missionId, ok := s.idParam(ctx, "id")
	if !ok {
		return
	}
	catId, ok := s.idParam(ctx, "catId")
	if !ok {
		return
	}
	mission, err := s.missionService.Assign(ctx, missionId, catId)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, mission)
}

func (s *Server) handleDeleteMission(ctx *gin.Context) {
	missionId, ok := s.idParam(ctx, "id")
	if !ok {
		return
	}
	if err := s.missionService.Delete(ctx, missionId); err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (s *Server) handleCompleteTarget(ctx *gin.Context) {
	targetId, ok := s.idParam(ctx, "id")
	if !ok {
		return
	}
	var update models.TargetUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	// completed only ever goes false -> true
	if !update.Completed {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "completed can only be set to true",
		})
		return
	}
	target, err := s.missionService.CompleteTarget(ctx, targetId)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, target)
}

func (s *Server) handleCreateNote(ctx *gin.Context) {
	targetId, ok := s.idParam(ctx, "id")
	if !ok {
		return
	}
	var input models.NoteInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	note, err := s.missionService.CreateNote(ctx, targetId, input.Text)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, note)
}

func (s *Server) handleUpdateNote(ctx *gin.Context) {
	targetId, ok := s.idParam(ctx, "id")
	if !ok {
		return
	}
	var input models.NoteInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": err.Error(),
		})
		return
	}
	note, err := s.missionService.UpdateNote(ctx, targetId, input.Text)
	if err != nil {
		s.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, note)
}

func (s *Server) idParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"message": fmt.Sprintf("invalid %s: use a number as id", name),
		})
		return 0, false
	}
	return id, true
}

// respondError maps the error taxonomy to status codes in one place so
// every handler reports the same condition the same way. Business-rule
// rejections, validation failures and the duplicate note all map to 400.
func (s *Server) respondError(ctx *gin.Context, err error) {
	var (
		upstreamErr   *catapi.HTTPError
		validationErr *myerrors.ValidationError
		ruleErr       *myerrors.BusinessRuleError
		conflictErr   *myerrors.ConflictError
		notFoundErr   *myerrors.NotFoundError
	)
	switch {
	case errors.Is(err, catapi.ErrUnknownBreed):
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.As(err, &upstreamErr):
		ctx.JSON(http.StatusBadGateway, gin.H{"message": "service unavailable, try again later"})
	case errors.As(err, &validationErr),
		errors.As(err, &ruleErr),
		errors.As(err, &conflictErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.As(err, &notFoundErr),
		errors.Is(err, repositories.ErrCatNotFound),
		errors.Is(err, repositories.ErrMissionNotFound),
		errors.Is(err, repositories.ErrTargetNotFound),
		errors.Is(err, repositories.ErrNoteNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		s.logger.Error("request failed", "method", ctx.Request.Method, "path", ctx.Request.URL.Path, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		s.logger.Info("request",
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"status", ctx.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) Run(addr string) error {
	s.httpServer.Addr = addr
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.router
}
