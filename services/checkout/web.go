package checkout

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/noodly/storefront/lib/mycontext"
	"github.com/noodly/storefront/lib/myerrors"
	"github.com/noodly/storefront/lib/myhttp"
	"github.com/noodly/storefront/services/cart"
	"github.com/noodly/storefront/services/statustracker"
)

func (s *service) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/checkout/start/product/{productID}", s.startProductPage()).Methods("POST")
	router.HandleFunc("/checkout/start/cart", s.startCartPage()).Methods("POST")
	router.HandleFunc("/checkout/{draftUID}", s.checkoutPage()).Methods("GET")
	router.HandleFunc("/checkout/{draftUID}/next", s.nextPage()).Methods("POST")
	router.HandleFunc("/checkout/{draftUID}/back", s.backPage()).Methods("POST")
	router.HandleFunc("/checkout/{draftUID}/confirm", s.confirmPage()).Methods("POST")
	router.HandleFunc("/checkout/{draftUID}/refresh", s.refreshPage()).Methods("POST")
	router.HandleFunc("/checkout/{draftUID}/close", s.closePage()).Methods("POST")
	router.HandleFunc("/order/status", s.statusPage()).Methods("GET")
}

//go:embed templates
var templateFolder embed.FS
var (
	checkoutPageTemplate *template.Template
)

func init() {
	checkoutPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/checkout.html"))
}

type checkoutPageView struct {
	Draft     Draft
	StateName string
	Cart      cart.Cart
	Status    *statustracker.OrderStatus
}

func (s *service) startProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		mode := ModeDirectOrder
		if r.URL.Query().Get("mode") == "add" {
			mode = ModeAddToCart
		}

		draft, err := s.StartProduct(c, mux.Vars(r)["productID"], mode)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		redirectToCheckout(w, r, draft.UID)
	}
}

func (s *service) startCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		draft, err := s.StartCart(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		redirectToCheckout(w, r, draft.UID)
	}
}

func (s *service) checkoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		draft, err := s.Get(c, mux.Vars(r)["draftUID"])
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		view := checkoutPageView{
			Draft:     draft,
			StateName: draft.State.String(),
		}
		if draft.Mode == ModeCart {
			view.Cart = s.CurrentCart(c)
		}
		if draft.State == StateConfirmed {
			status, found, err := s.LastStatus(c)
			if err == nil && found {
				view.Status = &status
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err = checkoutPageTemplate.Execute(w, view)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInternalError(err))
			return
		}
	}
}

func (s *service) nextPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		draftUID := mux.Vars(r)["draftUID"]

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		_, done, err := s.Next(c, draftUID, r.Form)
		if err != nil && myerrors.GetHTTPStatus(err) == http.StatusNotFound {
			errorWriter.WriteError(c, w, 2, err)
			return
		}
		// a blocked transition keeps the customer on the current step,
		// with the error rendered inline

		if done {
			http.Redirect(w, r, fmt.Sprintf("%s/cart", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
			return
		}

		redirectToCheckout(w, r, draftUID)
	}
}

func (s *service) backPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		draftUID := mux.Vars(r)["draftUID"]

		_, err := s.Back(c, draftUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		redirectToCheckout(w, r, draftUID)
	}
}

func (s *service) confirmPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		draftUID := mux.Vars(r)["draftUID"]

		_, err := s.Confirm(c, draftUID)
		if err != nil && myerrors.GetHTTPStatus(err) == http.StatusNotFound {
			errorWriter.WriteError(c, w, 1, err)
			return
		}
		// a failed submission keeps the draft on the review step with the
		// error rendered inline

		redirectToCheckout(w, r, draftUID)
	}
}

func (s *service) refreshPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		draftUID := mux.Vars(r)["draftUID"]

		_, err := s.Refresh(c, draftUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		redirectToCheckout(w, r, draftUID)
	}
}

func (s *service) closePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		s.Close(c, mux.Vars(r)["draftUID"])

		http.Redirect(w, r, fmt.Sprintf("%s/", myhttp.HostnameWithScheme(r)), http.StatusSeeOther)
	}
}

func (s *service) statusPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		draft, err := s.StartStatusView(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		redirectToCheckout(w, r, draft.UID)
	}
}

func redirectToCheckout(w http.ResponseWriter, r *http.Request, draftUID string) {
	http.Redirect(w, r, fmt.Sprintf("%s/checkout/%s", myhttp.HostnameWithScheme(r), draftUID), http.StatusSeeOther)
}
