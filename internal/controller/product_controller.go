package controller

import (
	"shopchat-be/internal/dto"
	"shopchat-be/internal/pkg/serverutils"
	"shopchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
	Segment(ctx *fiber.Ctx) error
}

type productController struct {
	service             service.IProductService
	segmentationService service.ISegmentationService
}

func NewProductController(
	service service.IProductService,
	segmentationService service.ISegmentationService,
) IProductController {
	return &productController{
		service:             service,
		segmentationService: segmentationService,
	}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/product/v1")
	h.Post("", c.Ingest)
	h.Post(":id/segment", c.Segment)
}

func (c *productController) Ingest(ctx *fiber.Ctx) error {
	var req dto.IngestProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Ingest(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest product", res))
}

// Segment runs classification synchronously, outside the job pipeline.
// Useful for operator re-classification after a catalog edit.
func (c *productController) Segment(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	res, err := c.segmentationService.SegmentProduct(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success segment product", res))
}
