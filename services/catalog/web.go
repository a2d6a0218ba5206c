package catalog

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/noodly/storefront/lib/mycontext"
	"github.com/noodly/storefront/lib/myhttp"
	"github.com/noodly/storefront/lib/mylog"
)

func (s *service) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/", s.productListPage()).Methods("GET")
	router.HandleFunc("/products", s.productListPage()).Methods("GET")
}

//go:embed templates
var templateFolder embed.FS
var (
	productListPageTemplate *template.Template
)

func init() {
	productListPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/product_list.html"))
}

type productListPageData struct {
	Categories []Category
	Products   []Product
	CategoryID string
}

func (s *service) productListPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		categoryID := r.URL.Query().Get("category")

		s.logger.Log(c, "", mylog.SeverityInfo, "Fetch products for category %q", categoryID)

		categories, err := s.ListCategories(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		products, err := s.ListProducts(c, categoryID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = productListPageTemplate.Execute(w, productListPageData{
			Categories: categories,
			Products:   products,
			CategoryID: categoryID,
		})
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}
	}
}
