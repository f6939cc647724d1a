package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"cvoptimizer/internal/common"
	"cvoptimizer/internal/errors"
	"cvoptimizer/internal/extract"
	"cvoptimizer/internal/keywords"
	"cvoptimizer/internal/storage"
	"cvoptimizer/internal/types"
	"cvoptimizer/internal/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// User-facing messages
const (
	msgNoFile           = "Ingen fil vald"
	msgJobPostingEmpty  = "Jobbannonsen är tom"
	msgCookieText       = "Jobbannonsen ser ut att vara cookie-text. Klistra in annonsen som text."
	msgCVEmpty          = "CV-texten är tom"
	msgMasterCVNotFound = "Inget master CV hittades"
	msgJobNotFound      = "Ingen jobbannons hittades"
	msgMissingInputs    = "Saknar jobbannons eller CV"
)

// uploadContentTypes are the accepted multipart content types
var uploadContentTypes = []string{
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/msword",
}

// uploadTempPrefix names upload temp files so the sweeper can find them
const uploadTempPrefix = "cvoptimizer-upload-"

const tracerName = "cvoptimizer.api"

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// uploadHandler extracts the text of an uploaded PDF or Word document and
// stores it as the master CV.
func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.metrics.Tracer(tracerName).Start(r.Context(), "api.upload")
	defer span.End()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, uploadFormError(err))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.writeError(w, r, errors.NewValidationError(errors.ErrCodeInvalidRequest, msgNoFile, nil))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "" && !slices.Contains(uploadContentTypes, contentType) {
		s.writeError(w, r, errors.NewValidationError(errors.ErrCodeUnsupportedFile,
			fmt.Sprintf("Filtypen %s stöds inte. Använd PDF eller DOCX.", contentType), nil))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	span.SetAttributes(
		attribute.String("upload.extension", ext),
		attribute.Int64("upload.size", header.Size),
	)

	text, err := s.extractUpload(file, ext)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		s.metrics.RecordUpload(ctx, ext, false)
		s.writeError(w, r, err)
		return
	}

	savedTo, err := s.store.Save(ctx, storage.KindMasterCV, text)
	if err != nil {
		s.metrics.RecordUpload(ctx, ext, false)
		s.writeError(w, r, err)
		return
	}

	s.metrics.RecordUpload(ctx, ext, true)
	s.metrics.RecordContentSize(ctx, "cv", runeLen(text))
	s.Logger.Info("Master CV uploaded",
		"filename", header.Filename, "size", utils.FormatFileSize(header.Size), "chars", runeLen(text), "saved_to", savedTo)

	s.writeJSON(w, http.StatusOK, types.UploadResponse{
		Success:  true,
		Filename: header.Filename,
		Text:     text,
		Length:   runeLen(text),
		SavedTo:  savedTo,
	})
}

func uploadFormError(err error) error {
	if stderrors.Is(err, http.ErrMissingFile) {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest, msgNoFile, err)
	}
	var maxBytesErr *http.MaxBytesError
	if stderrors.As(err, &maxBytesErr) {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Filen är för stor (max %d byte)", maxBytesErr.Limit), err)
	}
	return errors.NewValidationError(errors.ErrCodeInvalidRequest, "Ogiltig filuppladdning", err)
}

// extractUpload copies the upload to a temp file with the same extension,
// extracts its text and always removes the temp file.
func (s *Server) extractUpload(file multipart.File, ext string) (string, error) {
	tmp, err := os.CreateTemp(s.TempDir, uploadTempPrefix+"*"+ext)
	if err != nil {
		return "", errors.NewInternalError("TEMP_FILE_FAILED", "Ett fel uppstod", err)
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			s.Logger.Warn("Failed to remove upload temp file", "path", tmp.Name(), "error", err)
		}
	}()

	_, copyErr := io.Copy(tmp, file)
	closeErr := tmp.Close()
	if err := stderrors.Join(copyErr, closeErr); err != nil {
		return "", errors.NewInternalError("TEMP_FILE_FAILED", "Ett fel uppstod", err)
	}

	return extract.FromFile(tmp.Name())
}

// submitJobPostingHandler stores a job posting given as text or fetched from a URL
func (s *Server) submitJobPostingHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.JobPostingInput
	if err := parseJSONRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, errors.NewValidationError(errors.ErrCodeInvalidRequest, err.Error(), nil))
		return
	}

	jobText := req.Text
	if req.URL != "" {
		var err error
		jobText, err = s.fetcher.Fetch(ctx, req.URL)
		s.metrics.RecordScrape(ctx, err == nil)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	savedTo, err := s.store.Save(ctx, storage.KindJobPosting, jobText)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.RecordContentSize(ctx, "job_posting", runeLen(jobText))

	s.writeJSON(w, http.StatusOK, types.JobPostingResponse{
		Success: true,
		Text:    jobText,
		Length:  runeLen(jobText),
		SavedTo: savedTo,
	})
}

// submitJobPostingRawHandler stores a job posting sent as text/plain
func (s *Server) submitJobPostingRawHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	text := strings.TrimSpace(body)
	if text == "" {
		s.writeError(w, r, errors.NewValidationError(errors.ErrCodeEmptyText, msgJobPostingEmpty, nil))
		return
	}
	if common.IsCookieBanner(text) {
		s.writeError(w, r, errors.NewValidationError(errors.ErrCodeCookieText, msgCookieText, nil))
		return
	}

	s.saveRaw(w, r, storage.KindJobPosting, text)
}

// submitMasterCVRawHandler stores a CV sent as text/plain
func (s *Server) submitMasterCVRawHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	text := strings.TrimSpace(body)
	if text == "" {
		s.writeError(w, r, errors.NewValidationError(errors.ErrCodeEmptyText, msgCVEmpty, nil))
		return
	}

	s.saveRaw(w, r, storage.KindMasterCV, text)
}

func (s *Server) saveRaw(w http.ResponseWriter, r *http.Request, kind storage.Kind, text string) {
	savedTo, err := s.store.Save(r.Context(), kind, text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.RecordContentSize(r.Context(), string(kind), runeLen(text))

	s.writeJSON(w, http.StatusOK, types.SaveResponse{
		Success: true,
		Length:  runeLen(text),
		SavedTo: savedTo,
	})
}

func (s *Server) getMasterCVHandler(w http.ResponseWriter, r *http.Request) {
	s.getStored(w, r, storage.KindMasterCV, msgMasterCVNotFound)
}

func (s *Server) getJobPostingHandler(w http.ResponseWriter, r *http.Request) {
	s.getStored(w, r, storage.KindJobPosting, msgJobNotFound)
}

func (s *Server) getStored(w http.ResponseWriter, r *http.Request, kind storage.Kind, notFound string) {
	text, err := s.store.Get(r.Context(), kind)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if text == "" {
		s.writeError(w, r, errors.NewNotFoundError(errors.ErrCodeNotFound, notFound, nil))
		return
	}

	s.writeJSON(w, http.StatusOK, types.TextResponse{Text: text, Length: runeLen(text)})
}

// keywordsHandler compares job and CV keywords. Texts missing from the
// request are taken from storage.
func (s *Server) keywordsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req types.KeywordRequest
	if err := parseJSONRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	jobText, cvText, err := s.withStoredFallback(ctx, req.JobText, req.CVText)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, keywords.Compare(jobText, cvText, req.TopNOrDefault()))
}

// optimizeHandler runs the optimization and answers in format: "json" for
// the optimize response body, or a document format from the registry sent
// as an attachment.
func (s *Server) optimizeHandler(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := s.metrics.Tracer(tracerName).Start(r.Context(), "api.optimize")
		defer span.End()
		span.SetAttributes(attribute.String("output.format", format))

		var req types.OptimizeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}

		jobText, cvText, err := s.withStoredFallback(ctx,
			common.NormalizeInputText(req.JobText), common.NormalizeInputText(req.CVText))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if common.IsCookieBanner(jobText) {
			s.writeError(w, r, errors.NewValidationError(errors.ErrCodeCookieText, msgCookieText, nil))
			return
		}

		optimized, err := s.optimizer.Optimize(ctx, cvText, jobText)
		s.metrics.RecordOptimization(ctx, format, err == nil)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "optimization failed")
			s.writeError(w, r, err)
			return
		}

		if format == "json" {
			s.writeJSON(w, http.StatusOK, types.OptimizeResponse{
				OptimizedCV: optimized,
				Length:      runeLen(optimized),
			})
			return
		}
		s.writeDocument(w, r, format, optimized)
	}
}

// writeDocument renders text and sends it as a file download
func (s *Server) writeDocument(w http.ResponseWriter, r *http.Request, format, text string) {
	renderer, err := s.registry.Get(format)
	if err != nil {
		s.writeError(w, r, errors.NewInternalError(errors.ErrCodeRenderFailed, "Okänt utdataformat", err))
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, text); err != nil {
		s.writeError(w, r, errors.NewInternalError(errors.ErrCodeRenderFailed,
			fmt.Sprintf("Kunde inte skapa %s", strings.ToUpper(format)), err))
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, renderer.FileName))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.Logger.Warn("Failed to write document response", "format", format, "error", err)
	}
}

// withStoredFallback fills empty texts from storage. Both must be present
// afterwards.
func (s *Server) withStoredFallback(ctx context.Context, jobText, cvText string) (string, string, error) {
	var err error
	if jobText == "" {
		if jobText, err = s.store.Get(ctx, storage.KindJobPosting); err != nil {
			return "", "", err
		}
	}
	if cvText == "" {
		if cvText, err = s.store.Get(ctx, storage.KindMasterCV); err != nil {
			return "", "", err
		}
	}

	if jobText == "" || cvText == "" {
		return "", "", errors.NewValidationError(errors.ErrCodeMissingInput, msgMissingInputs, nil)
	}
	return jobText, cvText, nil
}
