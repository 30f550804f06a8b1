package v1

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// maxUploadSize caps résumé, logo and CV uploads.
const maxUploadSize = 10 << 20

// bindError keeps validator errors for the ErrorHandler to format and turns
// anything else (malformed JSON) into a plain 400.
func bindError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return err
	}
	return apperror.BadRequest("Invalid request body")
}

func paramID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.BadRequest("Invalid ID format")
	}
	return id, nil
}

// maxPage bounds page so offsets cannot overflow.
const maxPage = math.MaxInt32 / 100

// pageParams reads page and page_size, falling back to 1 and 10.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// readUpload reads the multipart field into memory, rejecting oversized files.
func readUpload(c *gin.Context, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, apperror.BadRequest(fmt.Sprintf("File field %q is required", field))
	}
	if fh.Size > maxUploadSize {
		return "", nil, apperror.BadRequest("File is too large (max 10MB)")
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, apperror.BadRequest("Could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize+1))
	if err != nil {
		return "", nil, apperror.BadRequest("Could not read uploaded file")
	}
	if len(data) > maxUploadSize {
		return "", nil, apperror.BadRequest("File is too large (max 10MB)")
	}
	return fh.Filename, data, nil
}
