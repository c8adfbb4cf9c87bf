package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-admin-dashboard/internal/backend"
	"go-admin-dashboard/internal/domain"
	mdw "go-admin-dashboard/internal/transport/http/middleware"
)

const (
	productsLoadFailedMsg     = "Could not load products from the server."
	productCreateForbiddenMsg = "Access denied: only admins can create products."
	productCreateFailedMsg    = "Could not save the product. Check the form data."
	productCreatedMsg         = "Product created."
	productDeleteForbiddenMsg = "Access denied: only admins can delete products."
	productDeleteFailedMsg    = "Could not delete the product."
)

func (h *Handler) ProductsPage(c *gin.Context) {
	h.renderProducts(c, gin.H{})
}

// CreateProduct multipart 转发给后端；403 给"仅限管理员"，其他错误给通用提示。
// 出错直接重渲染并把弹窗撑开、表单回填；成功走 redirect（等于整表重拉）。
func (h *Handler) CreateProduct(c *gin.Context) {
	sess := mdw.CurrentSession(c)
	in := backend.CreateProductInput{
		Name:  c.PostForm("name"),
		Price: c.PostForm("price"),
		Stock: c.PostForm("stock"),
	}
	if file, err := c.FormFile("image"); err == nil && file != nil && file.Size > 0 {
		f, err := file.Open()
		if err != nil {
			h.renderProducts(c, gin.H{"Notice": productCreateFailedMsg, "ShowModal": true, "Form": in})
			return
		}
		defer f.Close()
		in.Image = &backend.ImageUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Reader:      f,
		}
	}

	if _, err := h.api.CreateProduct(c.Request.Context(), sess.Token, in); err != nil {
		h.log.Warn("create product failed", zap.Error(err))
		mdw.ObserveBackendError("create_product", backendStatus(err))
		msg := productCreateFailedMsg
		if backend.IsForbidden(err) {
			msg = productCreateForbiddenMsg
		}
		h.renderProducts(c, gin.H{"Notice": msg, "ShowModal": true, "Form": in})
		return
	}
	h.invalidateStats(c.Request.Context())
	setFlash(c, flashSuccess, productCreatedMsg)
	c.Redirect(http.StatusSeeOther, "/products")
}

// DeleteProduct 确认框在浏览器端，到这里已经是确认过的那一次调用
func (h *Handler) DeleteProduct(c *gin.Context) {
	sess := mdw.CurrentSession(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		setFlash(c, flashError, productDeleteFailedMsg)
		c.Redirect(http.StatusSeeOther, "/products")
		return
	}
	if err := h.api.DeleteProduct(c.Request.Context(), sess.Token, id); err != nil {
		h.log.Warn("delete product failed", zap.Int64("id", id), zap.Error(err))
		mdw.ObserveBackendError("delete_product", backendStatus(err))
		if backend.IsForbidden(err) {
			setFlash(c, flashError, productDeleteForbiddenMsg)
		} else {
			setFlash(c, flashError, productDeleteFailedMsg)
		}
	} else {
		h.invalidateStats(c.Request.Context())
	}
	c.Redirect(http.StatusSeeOther, "/products")
}

// renderProducts 列表页渲染；每次都整表重拉，拉不到也要把页面给出来
func (h *Handler) renderProducts(c *gin.Context, data gin.H) {
	sess := mdw.CurrentSession(c)
	data["Active"] = "products"

	items, err := h.api.ListProducts(c.Request.Context(), sess.Token)
	if err != nil {
		if h.sessionExpired(c, err) {
			return
		}
		h.log.Warn("load products failed", zap.Error(err))
		mdw.ObserveBackendError("list_products", backendStatus(err))
		data["LoadError"] = productsLoadFailedMsg
		items = []domain.Product{}
	}
	data["Products"] = items
	h.render(c, http.StatusOK, "products.html", data)
}
