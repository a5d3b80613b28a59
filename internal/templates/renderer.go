package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/whitesvil1-lab/JustCani/internal/model"
	"github.com/whitesvil1-lab/JustCani/internal/service"
)

//go:embed files/*.tmpl
var embedded embed.FS

// Renderer рендерит текстовые экраны кассы
type Renderer struct {
	logger    *zap.Logger
	templates *template.Template
}

var funcs = template.FuncMap{
	"rupiah": model.FormatRupiah,
	"add":    func(a, b int) int { return a + b },
	"badge": func(mode model.Mode) string {
		return strings.ToUpper(string(mode))
	},
}

// NewRenderer загружает шаблоны из templatesDir; пустой путь - встроенные шаблоны
func NewRenderer(logger *zap.Logger, templatesDir string) (*Renderer, error) {
	var fsys fs.FS
	if templatesDir == "" {
		sub, err := fs.Sub(embedded, "files")
		if err != nil {
			return nil, fmt.Errorf("failed to open embedded templates: %w", err)
		}
		fsys = sub
	} else {
		fsys = os.DirFS(templatesDir)
	}

	tmpl, err := template.New("kasir").Funcs(funcs).ParseFS(fsys, "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	logger.Debug("templates loaded", zap.String("dir", templatesDir))
	return &Renderer{
		logger:    logger,
		templates: tmpl,
	}, nil
}

func (r *Renderer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}

// RenderCart рендерит корзину сессии
func (r *Renderer) RenderCart(view service.CartView) (string, error) {
	return r.render("cart.tmpl", view)
}

// RenderResults рендерит строки результатов поиска
func (r *Renderer) RenderResults(rows []service.ResultRow) (string, error) {
	return r.render("results.tmpl", rows)
}

// RenderSummary рендерит персистентную корзину
func (r *Renderer) RenderSummary(summary service.Summary) (string, error) {
	return r.render("summary.tmpl", summary)
}

// RenderProducts рендерит список товаров для штрихкодов
func (r *Renderer) RenderProducts(options []service.ProductOption) (string, error) {
	return r.render("products.tmpl", options)
}

// RenderPreview рендерит превью выбранного товара
func (r *Renderer) RenderPreview(product model.BarcodeProduct) (string, error) {
	return r.render("preview.tmpl", product)
}

// RenderHelp рендерит справку shell
func (r *Renderer) RenderHelp(mode model.Mode) (string, error) {
	return r.render("help.tmpl", mode)
}
