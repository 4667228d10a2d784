package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Pedrolamon/hairdayy-sub000/internal/httperr"
	"github.com/Pedrolamon/hairdayy-sub000/internal/httpresp"
	"github.com/Pedrolamon/hairdayy-sub000/internal/models"
	"github.com/Pedrolamon/hairdayy-sub000/internal/timezone"
)

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

type ProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	Stock    int     `json:"stock" binding:"gte=0"`
	Category string  `json:"category"`
	Active   *bool   `json:"active"`
}

type SaleRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

func (h *ProductHandler) List(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	var products []models.Product
	if err := h.db.Where("barber_id = ?", barber.ID).Order("name ASC").Find(&products).Error; err != nil {
		httperr.Internal(c, "failed_to_list_products", "Erro ao buscar produtos.")
		return
	}

	httpresp.List(c, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	product := models.Product{
		BarberID: barber.ID,
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		Category: req.Category,
		Active:   true,
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.db.Create(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_create_product", "Erro ao criar produto.")
		return
	}

	httpresp.Created(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var product models.Product
	if err := h.db.Where("id = ? AND barber_id = ?", id, barber.ID).First(&product).Error; err != nil {
		httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Stock = req.Stock
	product.Category = req.Category
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := h.db.Save(&product).Error; err != nil {
		httperr.Internal(c, "failed_to_update_product", "Erro ao atualizar produto.")
		return
	}

	httpresp.OK(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res := h.db.Model(&models.Product{}).
		Where("id = ? AND barber_id = ?", id, barber.ID).
		Update("active", false)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_product", "Erro ao remover produto.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
		return
	}

	c.Status(204)
}

// RegisterSale decrements the product stock and records the income in a
// single transaction. Stock is checked under FOR UPDATE so concurrent
// sales cannot oversell.
func (h *ProductHandler) RegisterSale(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var sale models.Sale
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND barber_id = ? AND active = true", req.ProductID, barber.ID).
			First(&product).Error; err != nil {
			return httperr.ErrBusiness("product_not_found")
		}

		if product.Stock < req.Quantity {
			return httperr.ErrBusiness("insufficient_stock")
		}

		product.Stock -= req.Quantity
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		sale = models.Sale{
			BarberID:  barber.ID,
			ProductID: product.ID,
			Quantity:  req.Quantity,
			Total:     product.Price * float64(req.Quantity),
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		record := models.FinancialRecord{
			BarberID:    barber.ID,
			Type:        models.RecordIncome,
			Amount:      sale.Total,
			Category:    "venda",
			Description: fmt.Sprintf("Venda: %dx %s", req.Quantity, product.Name),
			Date:        timezone.Now(),
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "product_not_found"):
			httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
		case httperr.IsBusiness(err, "insufficient_stock"):
			httperr.BadRequest(c, "insufficient_stock", "Estoque insuficiente.")
		default:
			httperr.Internal(c, "failed_to_register_sale", "Erro ao registrar venda.")
		}
		return
	}

	httpresp.Created(c, sale)
}

func (h *ProductHandler) ListSales(c *gin.Context) {
	barber, ok := barberForUser(c, h.db)
	if !ok {
		return
	}

	var sales []models.Sale
	if err := h.db.Preload("Product").
		Where("barber_id = ?", barber.ID).
		Order("created_at DESC").
		Find(&sales).Error; err != nil {
		httperr.Internal(c, "failed_to_list_sales", "Erro ao buscar vendas.")
		return
	}

	httpresp.List(c, sales)
}
