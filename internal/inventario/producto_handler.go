package inventario

import (
	"errors"
	"fmt"
	"strings"

	"negocio-backend/internal/apperror"
	"negocio-backend/internal/audit"
	"negocio-backend/internal/auth"
	"negocio-backend/internal/database"
	"negocio-backend/internal/logger"
	"negocio-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductoResponse struct {
	ID            uint            `json:"id"`
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion"`
	Cantidad      int             `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	PrecioVenta   decimal.Decimal `json:"precio_venta"`
	StockMinimo   int             `json:"stock_minimo"`
	Estado        string          `json:"estado"`
}

type CreateProductoRequest struct {
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion"`
	Cantidad      int             `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	PrecioVenta   decimal.Decimal `json:"precio_venta"`
	StockMinimo   *int            `json:"stock_minimo"`
}

type UpdateProductoRequest struct {
	Nombre        *string          `json:"nombre"`
	Descripcion   *string          `json:"descripcion"`
	Cantidad      *int             `json:"cantidad"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario"`
	PrecioVenta   *decimal.Decimal `json:"precio_venta"`
	StockMinimo   *int             `json:"stock_minimo"`
}

type InventarioResponse struct {
	Productos  []ProductoResponse `json:"productos"`
	ValorTotal decimal.Decimal    `json:"valor_total"` // cantidad * costo unitario
}

func toResponse(p *models.Producto) ProductoResponse {
	return ProductoResponse{
		ID:            p.ID,
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		Cantidad:      p.Cantidad,
		CostoUnitario: p.CostoUnitario,
		PrecioVenta:   p.PrecioVenta,
		StockMinimo:   p.StockMinimo,
		Estado:        string(p.Estado),
	}
}

// GET /api/productos
func ListProductosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Where("usuario_id = ?", usuarioID)

		// ?disponibles=true filtra solo productos con stock, para el
		// formulario de venta
		if c.Query("disponibles") == "true" {
			dbq = dbq.Where("cantidad > 0")
		}

		var productos []models.Producto
		if err := dbq.Order("created_at desc").Find(&productos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar el inventario")
		}

		res := InventarioResponse{
			Productos:  make([]ProductoResponse, 0, len(productos)),
			ValorTotal: decimal.Zero,
		}
		for i := range productos {
			p := &productos[i]
			res.Productos = append(res.Productos, toResponse(p))
			res.ValorTotal = res.ValorTotal.Add(p.CostoUnitario.Mul(decimal.NewFromInt(int64(p.Cantidad))))
		}
		return c.JSON(res)
	}
}

// GET /api/productos/:id
func GetProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		var producto models.Producto
		if err := database.DB.First(&producto, "id = ? AND usuario_id = ?", c.Params("id"), usuarioID).Error; err != nil {
			return apperror.NewNotFound("Producto")
		}

		return c.JSON(toResponse(&producto))
	}
}

// POST /api/productos
func CreateProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		var body CreateProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		if body.Nombre == "" {
			return apperror.NewValidation("El nombre es obligatorio")
		}
		if body.Cantidad < 0 {
			return apperror.NewValidation("La cantidad no puede ser negativa")
		}
		if body.CostoUnitario.IsNegative() || body.PrecioVenta.IsNegative() {
			return apperror.NewValidation("Costo y precio no pueden ser negativos")
		}

		stockMinimo := 5
		if body.StockMinimo != nil {
			if *body.StockMinimo < 0 {
				return apperror.NewValidation("El stock mínimo no puede ser negativo")
			}
			stockMinimo = *body.StockMinimo
		}

		producto := models.Producto{
			UsuarioID:     usuarioID,
			Nombre:        body.Nombre,
			Descripcion:   strings.TrimSpace(body.Descripcion),
			Cantidad:      body.Cantidad,
			CostoUnitario: body.CostoUnitario,
			PrecioVenta:   body.PrecioVenta,
			StockMinimo:   stockMinimo,
			Estado:        models.DeterminarEstado(body.Cantidad, stockMinimo),
		}

		if err := database.DB.Create(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el producto")
		}

		if id, nombre, err := audit.Actor(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UsuarioID:     id,
				UsuarioNombre: nombre,
				Entidad:       "producto",
				EntidadID:     producto.ID,
				Accion:        models.AccionCrear,
				Descripcion:   fmt.Sprintf("Producto agregado: %s (%d unidades)", producto.Nombre, producto.Cantidad),
				Despues:       toResponse(&producto),
			}); logErr != nil {
				logger.L().Warn("no se pudo escribir la bitácora", zap.Error(logErr))
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&producto))
	}
}

// PUT /api/productos/:id
func UpdateProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		var producto models.Producto
		if err := database.DB.First(&producto, "id = ? AND usuario_id = ?", c.Params("id"), usuarioID).Error; err != nil {
			return apperror.NewNotFound("Producto")
		}

		antes := toResponse(&producto)

		var body UpdateProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if body.Nombre != nil {
			nombre := strings.TrimSpace(*body.Nombre)
			if nombre == "" {
				return apperror.NewValidation("El nombre no puede quedar vacío")
			}
			producto.Nombre = nombre
		}
		if body.Descripcion != nil {
			producto.Descripcion = strings.TrimSpace(*body.Descripcion)
		}
		if body.Cantidad != nil {
			if *body.Cantidad < 0 {
				return apperror.NewValidation("La cantidad no puede ser negativa")
			}
			producto.Cantidad = *body.Cantidad
		}
		if body.CostoUnitario != nil {
			if body.CostoUnitario.IsNegative() {
				return apperror.NewValidation("El costo no puede ser negativo")
			}
			producto.CostoUnitario = *body.CostoUnitario
		}
		if body.PrecioVenta != nil {
			if body.PrecioVenta.IsNegative() {
				return apperror.NewValidation("El precio no puede ser negativo")
			}
			producto.PrecioVenta = *body.PrecioVenta
		}
		if body.StockMinimo != nil {
			if *body.StockMinimo < 0 {
				return apperror.NewValidation("El stock mínimo no puede ser negativo")
			}
			producto.StockMinimo = *body.StockMinimo
		}

		// el estado siempre se recalcula del par cantidad/stock mínimo
		producto.Estado = models.DeterminarEstado(producto.Cantidad, producto.StockMinimo)

		if err := database.DB.Save(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el producto")
		}

		if id, nombre, err := audit.Actor(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UsuarioID:     id,
				UsuarioNombre: nombre,
				Entidad:       "producto",
				EntidadID:     producto.ID,
				Accion:        models.AccionActualizar,
				Descripcion:   fmt.Sprintf("Producto actualizado: %s", producto.Nombre),
				Antes:         antes,
				Despues:       toResponse(&producto),
			}); logErr != nil {
				logger.L().Warn("no se pudo escribir la bitácora", zap.Error(logErr))
			}
		}

		return c.JSON(toResponse(&producto))
	}
}

// DELETE /api/productos/:id
// No se elimina un producto con ventas asociadas; la venta guarda el
// histórico de precios y necesita la referencia.
func DeleteProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID, err := auth.UsuarioID(c)
		if err != nil {
			return err
		}

		var producto models.Producto
		if err := database.DB.First(&producto, "id = ? AND usuario_id = ?", c.Params("id"), usuarioID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewNotFound("Producto")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo consultar el producto")
		}

		var ventas int64
		database.DB.Model(&models.Venta{}).Where("producto_id = ?", producto.ID).Count(&ventas)
		if ventas > 0 {
			return apperror.NewConflict("No se puede eliminar el producto porque tiene ventas asociadas")
		}

		antes := toResponse(&producto)

		if err := database.DB.Delete(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el producto")
		}

		if id, nombre, err := audit.Actor(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UsuarioID:     id,
				UsuarioNombre: nombre,
				Entidad:       "producto",
				EntidadID:     producto.ID,
				Accion:        models.AccionEliminar,
				Descripcion:   fmt.Sprintf("Producto eliminado: %s", producto.Nombre),
				Antes:         antes,
			}); logErr != nil {
				logger.L().Warn("no se pudo escribir la bitácora", zap.Error(logErr))
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
