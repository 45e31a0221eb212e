package reportes

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Paleta de los reportes.
const (
	colorTitulo     = "0A6ED1"
	colorEncabezado = "D9D9D9"
	colorTotales    = "107E3E"
)

var bordeFino = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

type estilos struct {
	titulo     int
	encabezado int
	celda      int
	moneda     int
	totales    int
}

func crearEstilos(f *excelize.File, simbolo string) (estilos, error) {
	var e estilos
	var err error

	e.titulo, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorTitulo}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return e, err
	}
	e.encabezado, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorEncabezado}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    bordeFino,
	})
	if err != nil {
		return e, err
	}
	e.celda, err = f.NewStyle(&excelize.Style{Border: bordeFino})
	if err != nil {
		return e, err
	}
	formatoMoneda := fmt.Sprintf("\"%s\"#,##0.00", simbolo)
	e.moneda, err = f.NewStyle(&excelize.Style{
		Border:       bordeFino,
		CustomNumFmt: &formatoMoneda,
	})
	if err != nil {
		return e, err
	}
	e.totales, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:         excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{colorTotales}},
		Border:       bordeFino,
		CustomNumFmt: &formatoMoneda,
	})
	if err != nil {
		return e, err
	}
	return e, nil
}

// FilaVenta es una venta ya resuelta para el reporte (con el nombre del
// producto en lugar de su ID).
type FilaVenta struct {
	Fecha          string
	ClienteNombre  string
	ProductoNombre string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	TotalVendido   decimal.Decimal
	Ganancia       decimal.Decimal
	Diezmo         decimal.Decimal
}

// GenerarReporteVentas arma el libro mensual de ventas: título combinado,
// encabezados, una fila por venta y la fila TOTALES al final.
func GenerarReporteVentas(titulo, simbolo string, filas []FilaVenta) (*excelize.File, error) {
	f := excelize.NewFile()
	const hoja = "Ventas"
	f.SetSheetName("Sheet1", hoja)

	e, err := crearEstilos(f, simbolo)
	if err != nil {
		return nil, err
	}

	if err := f.MergeCell(hoja, "A1", "H1"); err != nil {
		return nil, err
	}
	f.SetCellValue(hoja, "A1", titulo)
	f.SetCellStyle(hoja, "A1", "H1", e.titulo)
	f.SetRowHeight(hoja, 1, 24)

	encabezados := []string{"Fecha", "Cliente", "Producto", "Cantidad", "Precio Unit.", "Total", "Ganancia", "Diezmo"}
	for i, h := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(hoja, celda, h)
	}
	f.SetCellStyle(hoja, "A2", "H2", e.encabezado)

	totalVendido := decimal.Zero
	totalGanancia := decimal.Zero
	totalDiezmo := decimal.Zero

	fila := 3
	for _, v := range filas {
		f.SetCellValue(hoja, fmt.Sprintf("A%d", fila), v.Fecha)
		f.SetCellValue(hoja, fmt.Sprintf("B%d", fila), v.ClienteNombre)
		f.SetCellValue(hoja, fmt.Sprintf("C%d", fila), v.ProductoNombre)
		f.SetCellValue(hoja, fmt.Sprintf("D%d", fila), v.Cantidad)
		f.SetCellValue(hoja, fmt.Sprintf("E%d", fila), v.PrecioUnitario.InexactFloat64())
		f.SetCellValue(hoja, fmt.Sprintf("F%d", fila), v.TotalVendido.InexactFloat64())
		f.SetCellValue(hoja, fmt.Sprintf("G%d", fila), v.Ganancia.InexactFloat64())
		f.SetCellValue(hoja, fmt.Sprintf("H%d", fila), v.Diezmo.InexactFloat64())
		f.SetCellStyle(hoja, fmt.Sprintf("A%d", fila), fmt.Sprintf("D%d", fila), e.celda)
		f.SetCellStyle(hoja, fmt.Sprintf("E%d", fila), fmt.Sprintf("H%d", fila), e.moneda)

		totalVendido = totalVendido.Add(v.TotalVendido)
		totalGanancia = totalGanancia.Add(v.Ganancia)
		totalDiezmo = totalDiezmo.Add(v.Diezmo)
		fila++
	}

	f.SetCellValue(hoja, fmt.Sprintf("A%d", fila), "TOTALES")
	f.SetCellValue(hoja, fmt.Sprintf("F%d", fila), totalVendido.InexactFloat64())
	f.SetCellValue(hoja, fmt.Sprintf("G%d", fila), totalGanancia.InexactFloat64())
	f.SetCellValue(hoja, fmt.Sprintf("H%d", fila), totalDiezmo.InexactFloat64())
	f.SetCellStyle(hoja, fmt.Sprintf("A%d", fila), fmt.Sprintf("H%d", fila), e.totales)

	f.SetColWidth(hoja, "A", "A", 12)
	f.SetColWidth(hoja, "B", "C", 24)
	f.SetColWidth(hoja, "D", "D", 10)
	f.SetColWidth(hoja, "E", "H", 14)

	return f, nil
}

// FilaGasto es un gasto listo para el reporte de quincena.
type FilaGasto struct {
	Fecha       string
	Categoria   string
	Descripcion string
	Monto       decimal.Decimal
}

// GenerarReporteGastos arma el libro de gastos de una quincena.
func GenerarReporteGastos(titulo, simbolo string, filas []FilaGasto) (*excelize.File, error) {
	f := excelize.NewFile()
	const hoja = "Gastos"
	f.SetSheetName("Sheet1", hoja)

	e, err := crearEstilos(f, simbolo)
	if err != nil {
		return nil, err
	}

	if err := f.MergeCell(hoja, "A1", "D1"); err != nil {
		return nil, err
	}
	f.SetCellValue(hoja, "A1", titulo)
	f.SetCellStyle(hoja, "A1", "D1", e.titulo)
	f.SetRowHeight(hoja, 1, 24)

	encabezados := []string{"Fecha", "Categoría", "Descripción", "Monto"}
	for i, h := range encabezados {
		celda, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(hoja, celda, h)
	}
	f.SetCellStyle(hoja, "A2", "D2", e.encabezado)

	total := decimal.Zero
	fila := 3
	for _, g := range filas {
		f.SetCellValue(hoja, fmt.Sprintf("A%d", fila), g.Fecha)
		f.SetCellValue(hoja, fmt.Sprintf("B%d", fila), g.Categoria)
		f.SetCellValue(hoja, fmt.Sprintf("C%d", fila), g.Descripcion)
		f.SetCellValue(hoja, fmt.Sprintf("D%d", fila), g.Monto.InexactFloat64())
		f.SetCellStyle(hoja, fmt.Sprintf("A%d", fila), fmt.Sprintf("C%d", fila), e.celda)
		f.SetCellStyle(hoja, fmt.Sprintf("D%d", fila), fmt.Sprintf("D%d", fila), e.moneda)

		total = total.Add(g.Monto)
		fila++
	}

	f.SetCellValue(hoja, fmt.Sprintf("A%d", fila), "TOTAL")
	f.SetCellValue(hoja, fmt.Sprintf("D%d", fila), total.InexactFloat64())
	f.SetCellStyle(hoja, fmt.Sprintf("A%d", fila), fmt.Sprintf("D%d", fila), e.totales)

	f.SetColWidth(hoja, "A", "A", 12)
	f.SetColWidth(hoja, "B", "B", 18)
	f.SetColWidth(hoja, "C", "C", 32)
	f.SetColWidth(hoja, "D", "D", 14)

	return f, nil
}
