package handler

import "net/http"

// Wrap converts a HandlerFunc into a standard http.HandlerFunc so it can be
// mounted on any net/http router. Errors returned while rendering are passed
// to errHandler; when errHandler is nil they become a plain 500 response.
// Middlewares are applied in order, the first one being the outermost.
func Wrap[C Context](
	newCtx func(w http.ResponseWriter, r *http.Request) C,
	h HandlerFunc[C],
	errHandler ErrorHandler[C],
	middlewares ...Middleware[C],
) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := newCtx(w, r)

		resp := h(ctx)
		if resp == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if err := resp(w, r); err != nil {
			if errHandler != nil {
				errHandler(ctx, err)
				return
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// WrapDefault is Wrap with the default Context implementation.
func WrapDefault(h HandlerFunc[Context], errHandler ErrorHandler[Context], middlewares ...Middleware[Context]) http.HandlerFunc {
	return Wrap(NewContext, h, errHandler, middlewares...)
}
