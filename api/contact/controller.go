package contact

import (
	"errors"
	"net/http"

	dmn "github.com/beka-birhanu/vinom-portfolio/domain"
	"github.com/beka-birhanu/vinom-portfolio/service"
	"github.com/beka-birhanu/vinom-portfolio/service/i"
	"github.com/gin-gonic/gin"
)

const (
	sentMessage   = "Your message has been sent. I'll get back to you shortly."
	failedMessage = "Something went wrong. Please try again later."
	limitMessage  = "You have sent too many messages. Please try again later."
)

// Controller relays contact form posts.
type Controller struct {
	contact i.ContactService
}

func NewController(c i.ContactService) *Controller {
	return &Controller{contact: c}
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/contact", c.submit)
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/messages", c.list)
}

func (c *Controller) submit(ctx *gin.Context) {
	var request SubmitRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := c.contact.Submit(ctx.Request.Context(), dmn.ContactForm{
		Name:     request.Name,
		Email:    request.Email,
		Phone:    request.Phone,
		Subject:  request.Subject,
		Message:  request.Message,
		Botcheck: request.Botcheck,
	}, ctx.ClientIP())

	var fieldErr *dmn.FieldError
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, gin.H{"message": sentMessage})
	case errors.As(err, &fieldErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Message, "field": fieldErr.Field})
	case errors.Is(err, service.ErrRateLimited):
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": limitMessage})
	default:
		ctx.JSON(http.StatusBadGateway, gin.H{"error": failedMessage})
	}
}

func (c *Controller) list(ctx *gin.Context) {
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msgs, err := c.contact.Messages(ctx.Request.Context(), query.Limit, query.Offset)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load messages"})
		return
	}
	if msgs == nil {
		msgs = []*dmn.ContactMessage{}
	}
	ctx.JSON(http.StatusOK, gin.H{"messages": msgs})
}
