package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskify-api/internal/api/shared"
	"github.com/phrazzld/taskify-api/internal/domain"
	"github.com/phrazzld/taskify-api/internal/platform/logger"
	"github.com/phrazzld/taskify-api/internal/store"
)

const (
	// multipartDataField holds the JSON body of a multipart update.
	multipartDataField = "data"
	// multipartAvatarField holds the optional avatar file.
	multipartAvatarField = "avatar"
)

// errMalformedBody marks a request body that could not be decoded.
var errMalformedBody = domain.NewValidationError("", "Invalid request format", nil)

// principalFromRequest returns the authenticated caller, writing a 401 if absent.
func principalFromRequest(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p, ok := shared.PrincipalFrom(r.Context())
	if !ok {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Warn("principal not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized)
		return domain.Principal{}, false
	}
	return p, true
}

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// pathUUID is getPathUUID that writes the 400 itself.
func pathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	id, err := getPathUUID(r, paramName)
	if err != nil {
		HandleAPIError(w, r, err)
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate decodes a JSON body into v and validates it, writing a
// 400 on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		HandleAPIError(w, r, fmt.Errorf("%w: %w", errMalformedBody, err))
		return false
	}
	return validate(w, r, v)
}

func validate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := shared.ValidateRequest(v); err != nil {
		handleValidationError(w, r, err)
		return false
	}
	return true
}

// listParamsFromQuery reads paging, sorting, searchTerm and the filter keys
// in filterFields from the query string. Other keys are ignored; unparsable
// page or limit values fall back to defaults.
func listParamsFromQuery(r *http.Request, filterFields []string) store.ListParams {
	q := r.URL.Query()

	params := store.ListParams{
		SortBy:     q.Get("sortBy"),
		SortOrder:  q.Get("sortOrder"),
		SearchTerm: q.Get("searchTerm"),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		params.Limit = limit
	}

	for _, field := range filterFields {
		if value := q.Get(field); value != "" {
			if params.Filters == nil {
				params.Filters = make(map[string]string)
			}
			params.Filters[field] = value
		}
	}

	return params.Normalize()
}

// multipartUpdate is the decoded body of a profile or user update.
type multipartUpdate struct {
	avatar *domain.FileUpload
	file   io.Closer
	form   *multipart.Form
}

// Close releases the uploaded file and any temporary files of the form.
func (u *multipartUpdate) Close() {
	if u.file != nil {
		_ = u.file.Close()
	}
	if u.form != nil {
		_ = u.form.RemoveAll()
	}
}

// decodeUpdate reads an update body into v. Multipart bodies carry the JSON
// in the "data" field and an optional "avatar" file; plain JSON bodies are
// also accepted. maxBytes bounds the whole multipart body.
func decodeUpdate(r *http.Request, v any, maxBytes int64) (*multipartUpdate, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		if err := shared.DecodeJSON(r, v); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", errMalformedBody, err)
		}
		return &multipartUpdate{}, nil
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes+shared.MaxJSONBodyBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.NewValidationError("avatar", "exceeds the maximum size", nil)
		}
		return nil, fmt.Errorf("%w: %w", errMalformedBody, err)
	}

	if data := r.FormValue(multipartDataField); data != "" {
		if err := json.Unmarshal([]byte(data), v); err != nil {
			_ = r.MultipartForm.RemoveAll()
			return nil, fmt.Errorf("%w: %w", errMalformedBody, err)
		}
	}

	file, header, err := r.FormFile(multipartAvatarField)
	if errors.Is(err, http.ErrMissingFile) {
		return &multipartUpdate{form: r.MultipartForm}, nil
	}
	if err != nil {
		_ = r.MultipartForm.RemoveAll()
		return nil, fmt.Errorf("%w: %w", errMalformedBody, err)
	}

	return &multipartUpdate{
		avatar: &domain.FileUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     file,
		},
		file: file,
		form: r.MultipartForm,
	}, nil
}
