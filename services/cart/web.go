package cart

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/noodly/storefront/lib/mycontext"
	"github.com/noodly/storefront/lib/myerrors"
	"github.com/noodly/storefront/lib/myhttp"
)

func (s *service) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/cart", s.cartPage()).Methods("GET")
	router.HandleFunc("/cart/{productID}/quantity", s.setQuantityPage()).Methods("POST")
	router.HandleFunc("/cart/{productID}/remove", s.removePage()).Methods("POST")
	router.HandleFunc("/cart/clear", s.clearPage()).Methods("POST")
}

//go:embed templates
var templateFolder embed.FS
var (
	cartPageTemplate *template.Template
)

func init() {
	cartPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/cart.html"))
}

func (s *service) cartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cart := s.Get(c)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := cartPageTemplate.Execute(w, cart)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s *service) setQuantityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productID := mux.Vars(r)["productID"]

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		quantity, err := strconv.Atoi(r.Form.Get("quantity"))
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputErrorf("invalid quantity %q", r.Form.Get("quantity")))
			return
		}

		s.SetQuantity(c, productID, quantity)

		http.Redirect(w, r, fmt.Sprintf("%s/cart", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
	}
}

func (s *service) removePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		productID := mux.Vars(r)["productID"]

		s.Remove(c, productID)

		http.Redirect(w, r, fmt.Sprintf("%s/cart", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
	}
}

func (s *service) clearPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		s.Clear(c)

		http.Redirect(w, r, fmt.Sprintf("%s/cart", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
	}
}
