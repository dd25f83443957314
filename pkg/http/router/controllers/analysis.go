package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/routehazard/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type analysisAPI struct {
	analysisService AnalysisService
	log             *zap.Logger
}

func New(analysisService AnalysisService, log *zap.Logger) *analysisAPI {
	return &analysisAPI{
		analysisService: analysisService,
		log:             log,
	}
}

func (api *analysisAPI) Routes(group *helper.RouteGroup) {
	group.GET("/analyzeRoute", api.analyzeRoute)
	group.POST("/analyzePolyline", api.analyzePolyline)
}

func (api *analysisAPI) validateRequest(w http.ResponseWriter, r *http.Request,
	request interface{}) bool {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return false
	}
	return true
}

func (api *analysisAPI) analyzeRoute(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request analyzeRouteRequest
		err     error
	)

	query := r.URL.Query()

	request.RouteId = query.Get("route_id")
	request.OriginLat, err = strconv.ParseFloat(query.Get("origin_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lat is required and must be a valid float"))
		return
	}
	request.OriginLon, err = strconv.ParseFloat(query.Get("origin_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("origin_lon is required and must be a valid float"))
		return
	}
	request.DestinationLat, err = strconv.ParseFloat(query.Get("destination_lat"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lat is required and must be a valid float"))
		return
	}
	request.DestinationLon, err = strconv.ParseFloat(query.Get("destination_lon"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("destination_lon is required and must be a valid float"))
		return
	}

	if !api.validateRequest(w, r, request) {
		return
	}

	analysis, route, err := api.analysisService.AnalyzeRoute(r.Context(), request.RouteId,
		request.OriginLat, request.OriginLon, request.DestinationLat, request.DestinationLon)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewAnalysisResponse(analysis, route)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *analysisAPI) analyzePolyline(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request analyzePolylineRequest
		err     error
	)
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if !api.validateRequest(w, r, request) {
		return
	}

	analysis, err := api.analysisService.AnalyzePolyline(r.Context(), request.RouteId,
		request.Polyline, request.ToPois())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK,
		envelope{"data": NewAnalysisResponse(analysis, nil)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
