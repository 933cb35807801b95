// Package folio is the Composition Root for the folio content editor.
//
// It connects the editing state machine (pkg/editor) with the JSON file
// store (pkg/adapters/fs) and exposes the functional options callers use to
// point it at a site project.
//
// A project holds two collections, each a JSON array of schema-less objects:
//
//   - Predictions: structured records edited field by field.
//   - Blog Posts: records with a markdown body, previewed as sanitized HTML.
//
// Records are edited through generic forms built from whatever fields they
// carry, and edited text is coerced back to each field's original type on
// save. Fields the form does not show are carried through untouched.
//
// Usage:
//
//	ws, err := folio.Open(".", folio.WithAtomic(true))
//	if err != nil {
//		return err
//	}
//	if _, err := ws.Shell.Load(ctx); err != nil {
//		// per-collection failures; the other collections are still usable
//	}
//	blog, _ := ws.Shell.Session("blog")
//	blog.Dispatch(ctx, editor.New{})
//	blog.Dispatch(ctx, editor.Save{})
package folio
