package v1

import (
	"net/http"
	"net/url"

	"github.com/andreyxaxa/portfolio-dashboard/internal/controller/restapi/v1/response"
	"github.com/gofiber/fiber/v2"
)

// @Summary 	List images
// @Description Newest first. folder=root lists the bucket root.
// @Tags 		images
// @Produce 	json
// @Param 		folder query string false "Folder"
// @Success 	200 {object} response.Images
// @Router 		/v1/images [get]
func (r *V1) listImages(ctx *fiber.Ctx) error {
	items, err := r.images.List(ctx.UserContext(), ctx.Query("folder"))
	if err != nil {
		return r.useCaseError(ctx, err, "listImages", nil)
	}

	return ctx.JSON(response.Images{Images: items})
}

// @Summary  	Upload image
// @Description Stores an image under a chosen name, outside of any record
// @Tags 		images
// @Accept 		mpfd
// @Produce 	json
// @Param 		file 	 formData file   true  "Image file"
// @Param 		filename formData string true  "Name without extension: letters, numbers, hyphens, underscores"
// @Param 		folder 	 formData string false "Folder, root for none"
// @Success 	201 {object} entity.AssetRef
// @Failure 	400 {object} response.Error "Invalid filename"
// @Failure 	413 {object} response.Error "File too large"
// @Failure 	415 {object} response.Error "Unsupported format"
// @Router 		/v1/images [post]
func (r *V1) uploadImage(ctx *fiber.Ctx) error {
	file, uerr := readImage(ctx)
	if uerr != nil {
		return errorResponse(ctx, uerr.code, uerr.msg)
	}

	ref, err := r.images.Upload(ctx.UserContext(), ctx.FormValue("folder"), ctx.FormValue("filename"), file)
	if err != nil {
		return r.useCaseError(ctx, err, "uploadImage", nil)
	}

	return ctx.Status(http.StatusCreated).JSON(ref)
}

// @Summary 	Delete image
// @Tags 		images
// @Param		asset_id path string true "Asset ID, may contain slashes"
// @Success		204 "Deleted"
// @Failure 	404 {object} response.Error "Image not found"
// @Router 		/v1/images/{asset_id} [delete]
func (r *V1) deleteImage(ctx *fiber.Ctx) error {
	assetID, err := url.PathUnescape(ctx.Params("*"))
	if err != nil || assetID == "" {
		return errorResponse(ctx, http.StatusBadRequest, "invalid asset id")
	}

	deleted, err := r.images.Delete(ctx.UserContext(), assetID)
	if err != nil {
		return r.useCaseError(ctx, err, "deleteImage", nil)
	}

	if !deleted {
		return errorResponse(ctx, http.StatusNotFound, "image not found")
	}

	return ctx.SendStatus(http.StatusNoContent)
}
