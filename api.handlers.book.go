package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Response messages. Their wording is part of the public contract.
const (
	MsgCreated              = "Buku berhasil ditambahkan"
	MsgCreateMissingName    = "Gagal menambahkan buku. Mohon isi nama buku"
	MsgCreateReadPage       = "Gagal menambahkan buku. readPage tidak boleh lebih besar dari pageCount"
	MsgCreateInvalidPayload = "Gagal menambahkan buku. Data buku tidak valid"
	MsgCreateFailed         = "Buku gagal ditambahkan"
	MsgListFailed           = "Gagal mengambil daftar buku"
	MsgNotFound             = "Buku tidak ditemukan"
	MsgGetFailed            = "Gagal mengambil buku"
	MsgUpdated              = "Berhasil memperbaharui buku"
	MsgUpdateMissingName    = "Gagal memperbarui buku. Mohon isi nama buku"
	MsgUpdateReadPage       = "Gagal memperbarui buku. readPage tidak boleh lebih besar dari pageCount"
	MsgUpdateInvalidPayload = "Gagal memperbarui buku. Data buku tidak valid"
	MsgUpdateNotFound       = "Buku gagal di perbaharui. Id tidak ditemukan"
	MsgUpdateFailed         = "Buku gagal di perbaharui"
	MsgDeleted              = "Berhasil menghapus buku"
	MsgDeleteNotFound       = "Buku gagal dihapus. Id tidak ditemukan"
	MsgDeleteFailed         = "Buku gagal dihapus"
)

// Index provides same details like `Status` handler by redirecting the request.
func (api *APIHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, "/status", http.StatusSeeOther)
}

// Status provides basics details about the application to the public users.
func (api *APIHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(
		map[string]interface{}{
			"requestid": requestID,
			"status":    fmt.Sprintf("up & running since %.0f mins", api.clock.Now().Sub(api.stats.started).Minutes()),
			"message":   "Hello. Bookshelf api is available. Enjoy :)",
		},
	); err != nil {
		api.GetLoggerFromContext(r.Context()).Error("failed to send status response", zap.Error(err))
	}
}

// CreateBook godoc
// @Summary      Add a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        book  body      BookInput  true  "book to add"
// @Success      201   {object}  APIResponse
// @Failure      400   {object}  APIError
// @Failure      500   {object}  APIError
// @Router       /books [post]
func (api *APIHandler) CreateBook(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	logger := api.GetLoggerFromContext(ctx)
	var in BookInput
	if err := DecodeBookRequestBody(r, &in); err != nil {
		logger.Error("failed to decode book", zap.Error(err))
		api.writeError(ctx, w, http.StatusBadRequest, MsgCreateInvalidPayload)
		return
	}

	id, err := api.bookService.Add(ctx, in)
	var verr *ValidationError
	if errors.As(err, &verr) {
		logger.Error("failed to create book", zap.String("reason", verr.Reason))
		msg := MsgCreateReadPage
		if verr.Reason == ReasonMissingName {
			msg = MsgCreateMissingName
		}
		api.writeError(ctx, w, http.StatusBadRequest, msg)
		return
	}
	if err != nil {
		logger.Error("failed to create book", zap.Error(err))
		api.writeError(ctx, w, http.StatusInternalServerError, MsgCreateFailed)
		return
	}

	logger.Info("success to create book", zap.String("book.id", id))
	resp := GenericResponse(http.StatusCreated, MsgCreated, map[string]string{"bookId": id})
	api.writeResponse(ctx, w, resp)
}

// GetAllBooks godoc
// @Summary      List books
// @Description  At most one filter applies, in the order name, reading, finished.
// @Tags         books
// @Produce      json
// @Param        name      query     string  false  "case-insensitive name substring"
// @Param        reading   query     string  false  "1 for books being read"
// @Param        finished  query     string  false  "1 for finished books"
// @Success      200       {object}  APIResponse
// @Router       /books [get]
func (api *APIHandler) GetAllBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	logger := api.GetLoggerFromContext(ctx)
	books, err := api.bookService.List(ctx, ParseBookFilter(r.URL.Query()))
	if err != nil {
		logger.Error("failed to get all books", zap.Error(err))
		api.writeError(ctx, w, http.StatusInternalServerError, MsgListFailed)
		return
	}
	logger.Info("success to get all books", zap.Int("books.count", len(books)))
	resp := GenericResponse(http.StatusOK, "", map[string]interface{}{"books": books})
	api.writeResponse(ctx, w, resp)
}

// GetOneBook godoc
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "book id"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIError
// @Router       /books/{id} [get]
func (api *APIHandler) GetOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")
	logger := api.GetLoggerFromContext(ctx).With(zap.String("book.id", id))
	book, err := api.bookService.GetOne(ctx, id)
	if errors.Is(err, ErrBookNotFound) {
		logger.Error("book does not exist")
		api.writeError(ctx, w, http.StatusNotFound, MsgNotFound)
		return
	}
	if err != nil {
		logger.Error("failed to get book", zap.Error(err))
		api.writeError(ctx, w, http.StatusInternalServerError, MsgGetFailed)
		return
	}
	logger.Info("success to get book")
	resp := GenericResponse(http.StatusOK, "", map[string]interface{}{"book": book})
	api.writeResponse(ctx, w, resp)
}

// UpdateBook godoc
// @Summary      Replace a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Param        id    path      string     true  "book id"
// @Param        book  body      BookInput  true  "new book content"
// @Success      200   {object}  APIResponse
// @Failure      400   {object}  APIError
// @Failure      404   {object}  APIError
// @Router       /books/{id} [put]
func (api *APIHandler) UpdateBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")
	logger := api.GetLoggerFromContext(ctx).With(zap.String("book.id", id))
	var in BookInput
	if err := DecodeBookRequestBody(r, &in); err != nil {
		logger.Error("failed to decode book", zap.Error(err))
		api.writeError(ctx, w, http.StatusBadRequest, MsgUpdateInvalidPayload)
		return
	}

	_, err := api.bookService.Update(ctx, id, in)
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		logger.Error("failed to update book", zap.String("reason", verr.Reason))
		msg := MsgUpdateReadPage
		if verr.Reason == ReasonMissingName {
			msg = MsgUpdateMissingName
		}
		api.writeError(ctx, w, http.StatusBadRequest, msg)
		return
	case errors.Is(err, ErrBookNotFound):
		logger.Error("book does not exist")
		api.writeError(ctx, w, http.StatusNotFound, MsgUpdateNotFound)
		return
	case err != nil:
		logger.Error("failed to update book", zap.Error(err))
		api.writeError(ctx, w, http.StatusInternalServerError, MsgUpdateFailed)
		return
	}
	logger.Info("success to update book")
	api.writeResponse(ctx, w, GenericResponse(http.StatusOK, MsgUpdated, nil))
}

// DeleteOneBook godoc
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "book id"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIError
// @Router       /books/{id} [delete]
func (api *APIHandler) DeleteOneBook(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()
	id := ps.ByName("id")
	logger := api.GetLoggerFromContext(ctx).With(zap.String("book.id", id))
	err := api.bookService.Delete(ctx, id)
	if errors.Is(err, ErrBookNotFound) {
		logger.Error("book does not exist")
		api.writeError(ctx, w, http.StatusNotFound, MsgDeleteNotFound)
		return
	}
	if err != nil {
		logger.Error("failed to delete book", zap.Error(err))
		api.writeError(ctx, w, http.StatusInternalServerError, MsgDeleteFailed)
		return
	}
	logger.Info("success to delete book")
	api.writeResponse(ctx, w, GenericResponse(http.StatusOK, MsgDeleted, nil))
}
