package api

import (
	"github.com/go-chi/chi/v5"

	appsvcs "github.com/ghuser/wardrobe/services/wardrobe/application/services"
	"github.com/ghuser/wardrobe/services/wardrobe/application/handlers"
)

// WardrobeRoutes registers catalog endpoints on the provided chi router.
func WardrobeRoutes(r chi.Router, svcs *appsvcs.Services, isProduction bool) {
	items := handlers.NewItemHandler(svcs, isProduction)
	outfits := handlers.NewOutfitHandler(svcs, isProduction)
	current := handlers.NewCurrentOutfitHandler(svcs, isProduction)
	catalog := handlers.NewCatalogHandler(svcs, isProduction)
	vocab := handlers.NewVocabularyHandler(svcs, isProduction)

	r.Group(func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", items.List)
			r.Post("/", items.Create)
			r.Post("/bulk", items.BulkCreate)
			r.Get("/{id}", items.Get)
			r.Patch("/{id}", items.Patch)
			r.Delete("/{id}", items.Delete)
		})

		r.Route("/outfits", func(r chi.Router) {
			r.Get("/", outfits.List)
			r.Post("/", outfits.Create)
			r.Get("/{id}", outfits.Get)
			r.Patch("/{id}", outfits.Patch)
			r.Delete("/{id}", outfits.Delete)
			r.Post("/{id}/load", outfits.Load)
		})

		r.Route("/outfit/current", func(r chi.Router) {
			r.Get("/", current.Get)
			r.Delete("/", current.Clear)
			r.Post("/items", current.Add)
			r.Delete("/items/{id}", current.Remove)
			r.Post("/save", current.Save)
			r.Post("/suggest", current.Suggest)
		})

		r.Get("/stats", catalog.Stats)
		r.Get("/export", catalog.Export)
		r.Post("/import", catalog.Import)
		r.Post("/reset", catalog.Reset)

		r.Route("/vocabulary", func(r chi.Router) {
			r.Get("/", vocab.Get)
			r.Post("/{kind}", vocab.Add)
			r.Delete("/{kind}/{value}", vocab.Remove)
		})

		r.Post("/classify", handlers.NewClassifyHandler(svcs, isProduction).Execute)
	})
}

// MediaRoutes registers the image streaming endpoint. Mount it at the root so
// stored references like /media/images/... resolve as-is.
func MediaRoutes(r chi.Router, svcs *appsvcs.Services, isProduction bool) {
	r.Get("/media/*", handlers.NewMediaHandler(svcs, isProduction).Execute)
}
