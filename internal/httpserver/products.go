package httpserver

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"produtos-alert/internal/domain"
)

type productHandler struct {
	svc    ProductService
	logger *zap.Logger
}

func errorBody(msg string) gin.H {
	return gin.H{"erro": msg}
}

func (h *productHandler) list(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *productHandler) create(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.fail(c, bindError(err, in))
		return
	}
	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("product created", zap.Int64("id", p.ID))
	c.JSON(http.StatusCreated, p)
}

func (h *productHandler) update(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.fail(c, bindError(err, in))
		return
	}
	id, ok := parseID(c)
	if !ok {
		// a non-numeric id cannot name a stored row
		h.fail(c, domain.ErrNotFound)
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("product updated", zap.Int64("id", p.ID))
	c.JSON(http.StatusOK, p)
}

func (h *productHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("product deleted", zap.Int64("id", id))
	c.Status(http.StatusNoContent)
}

func (h *productHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), errorBody(err.Error()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidProduct), errors.Is(err, domain.ErrInvalidDate), errors.Is(err, errInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var errInvalidBody = errors.New("invalid JSON body")

// bindError maps binder failures onto the input errors clients see. Missing
// or blank fields win over malformed ones, as in ProductInput.Validate.
func bindError(err error, in domain.ProductInput) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				return domain.ErrInvalidProduct
			}
		}
		if verr := in.Validate(); verr != nil {
			return verr
		}
		return domain.ErrInvalidDate
	}
	if errors.Is(err, io.EOF) {
		return domain.ErrInvalidProduct
	}
	return errInvalidBody
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
