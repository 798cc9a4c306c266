package handlers

import "net/http"

// Health serves the GET / liveness message.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"mensagem": "API de busca de medicamentos esta rodando!",
	})
}
