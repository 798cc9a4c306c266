// Package handlers implements the HTTP endpoints. Handlers translate between
// the Portuguese wire contract and the internal pipeline types; they hold no
// business logic of their own.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/UnicoContato/alpha7-IA-view/internal/assist"
	"github.com/UnicoContato/alpha7-IA-view/internal/catalog"
	"github.com/UnicoContato/alpha7-IA-view/internal/search"
)

// SearchHandler serves POST /api/buscar-medicamentos.
type SearchHandler struct {
	engine         *search.Engine
	defaultStoreID int64
	tenantID       string
	logger         *slog.Logger
}

// NewSearchHandler creates the search endpoint handler. defaultStoreID is
// used when the request omits unidade_negocio_id.
func NewSearchHandler(engine *search.Engine, defaultStoreID int64, tenantID string, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{
		engine:         engine,
		defaultStoreID: defaultStoreID,
		tenantID:       tenantID,
		logger:         logger,
	}
}

// SearchRequest is the wire request payload.
type SearchRequest struct {
	Query   string `json:"query"`
	StoreID int64  `json:"unidade_negocio_id,omitempty"`
}

// SearchResponse is the wire response payload.
type SearchResponse struct {
	Search        searchInfo     `json:"busca"`
	Metadata      metadata       `json:"metadados"`
	Clarification clarification  `json:"clarificacao"`
	Products      []productDTO   `json:"produtos"`
	Assistant     assist.Message `json:"atendimento"`
}

type searchInfo struct {
	OriginalTerm        string  `json:"termo_original"`
	ExtractedIngredient *string `json:"principio_ativo_extraido"`
	PharmaceuticalForm  *string `json:"forma_farmaceutica"`
}

type metadata struct {
	SearchMethod       string   `json:"metodo_busca"`
	RerankedByAI       bool     `json:"ordenado_por_ia"`
	Ambiguous          bool     `json:"busca_ambigua"`
	TotalProducts      int      `json:"total_produtos"`
	StoreID            int64    `json:"unidade_negocio_id"`
	Classifications    []string `json:"classificacoes_disponiveis"`
	UnmappedSourceRows []string `json:"classificacoes_nao_mapeadas"`
}

type clarification struct {
	Needed   bool     `json:"precisa_clarificar"`
	Type     string   `json:"tipo,omitempty"`
	Question string   `json:"pergunta,omitempty"`
	Options  []string `json:"opcoes,omitempty"`
}

type productDTO struct {
	ID                       int64     `json:"id"`
	Code                     string    `json:"codigo"`
	Barcode                  string    `json:"codigo_barras"`
	Description              string    `json:"descricao"`
	Ingredient               *string   `json:"principio_ativo"`
	Classification           *string   `json:"tipo_classificacao"`
	SourceClassificationID   *int64    `json:"classificacao_id_origem"`
	SourceClassificationName *string   `json:"classificacao_nome_origem"`
	PackageID                int64     `json:"embalagem_id"`
	AvailableStock           int       `json:"estoque_disponivel"`
	RelevanceScore           *int      `json:"relevancia_score"`
	SearchOrigin             string    `json:"origem_busca"`
	Prices                   pricesDTO `json:"precos"`
}

type pricesDTO struct {
	SalePrice            *float64   `json:"preco_venda"`
	HasActiveOffer       bool       `json:"tem_oferta_ativa"`
	PriceWithoutDiscount *float64   `json:"preco_sem_desconto"`
	PriceWithDiscount    *float64   `json:"preco_com_desconto"`
	DiscountPercent      *float64   `json:"desconto_percentual"`
	OfferBookName        *string    `json:"nome_caderno_oferta"`
	OfferType            *string    `json:"tipo_oferta"`
	Take                 *int64     `json:"leve"`
	Pay                  *int64     `json:"pague"`
	OfferStart           *time.Time `json:"oferta_inicio"`
	OfferEnd             *time.Time `json:"oferta_fim"`
	GeneralReference     *float64   `json:"preco_referencial_geral"`
	GeneralSale          *float64   `json:"preco_venda_geral"`
	StoreReference       *float64   `json:"preco_referencial_loja"`
	StoreSale            *float64   `json:"preco_venda_loja"`
	GeneralMarkup        *float64   `json:"markup_geral"`
	StoreMarkup          *float64   `json:"markup_loja"`
	ControlledPrice      *float64   `json:"plugpharma_preco_controlado"`
}

func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisicao invalido", err)
		return
	}

	storeID := req.StoreID
	if storeID == 0 {
		storeID = h.defaultStoreID
	}

	resp, err := h.engine.Resolve(r.Context(), search.Request{
		Query:    req.Query,
		StoreID:  storeID,
		TenantID: h.tenantID,
	})
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "Query vazia", nil)
			return
		}
		h.logger.Error("search failed", "query", req.Query, "error", err)
		writeError(w, http.StatusInternalServerError, "Erro ao processar busca", err)
		return
	}

	writeJSON(w, http.StatusOK, buildResponse(resp, storeID))
}

func buildResponse(resp *search.Response, storeID int64) SearchResponse {
	method := strings.Join(resp.MethodsUsed, " + ")
	if method == "" {
		method = "nenhum metodo encontrou resultados"
	}

	out := SearchResponse{
		Search: searchInfo{
			OriginalTerm:        strings.ToLower(strings.TrimSpace(resp.Query)),
			ExtractedIngredient: differentOrNil(resp.IngredientText, resp.Normalized),
			PharmaceuticalForm:  stringOrNil(resp.Form),
		},
		Metadata: metadata{
			SearchMethod:       method,
			RerankedByAI:       resp.Reranked,
			Ambiguous:          resp.Clarification.Needed,
			TotalProducts:      len(resp.Candidates),
			StoreID:            storeID,
			Classifications:    availableClassifications(resp.Candidates),
			UnmappedSourceRows: unmappedClassifications(resp.Candidates),
		},
		Clarification: clarification{
			Needed:   resp.Clarification.Needed,
			Type:     resp.Clarification.Type,
			Question: resp.Clarification.Question,
			Options:  resp.Clarification.Options,
		},
		Products:  make([]productDTO, 0, len(resp.Candidates)),
		Assistant: resp.Message,
	}

	for _, p := range resp.Candidates {
		out.Products = append(out.Products, toProductDTO(p))
	}
	return out
}

func toProductDTO(p catalog.Product) productDTO {
	dto := productDTO{
		ID:                       p.ID,
		Code:                     p.Code,
		Barcode:                  p.Barcode,
		Description:              p.Description,
		Ingredient:               stringOrNil(p.IngredientName),
		Classification:           stringOrNil(p.Classification),
		SourceClassificationID:   int64OrNil(p.ClassificationID),
		SourceClassificationName: stringOrNil(p.ClassificationName),
		PackageID:                p.PackageID,
		AvailableStock:           p.Stock,
		SearchOrigin:             p.Origin,
	}
	if score := relevance(p); score > 0 {
		dto.RelevanceScore = &score
	}
	if p.Prices != nil {
		dto.Prices = pricesDTO{
			SalePrice:            floatOrNil(p.Prices.FinalSalePrice),
			HasActiveOffer:       p.Prices.HasActiveOffer,
			PriceWithoutDiscount: floatOrNil(p.Prices.PriceWithoutDiscount),
			PriceWithDiscount:    floatOrNil(p.Prices.PriceWithDiscount),
			DiscountPercent:      floatOrNil(p.Prices.OfferDiscountPercent),
			OfferBookName:        stringOrNil(p.Prices.OfferBookName),
			OfferType:            stringOrNil(p.Prices.OfferType),
			Take:                 int64OrNil(p.Prices.Take),
			Pay:                  int64OrNil(p.Prices.Pay),
			OfferStart:           p.Prices.OfferStart,
			OfferEnd:             p.Prices.OfferEnd,
			GeneralReference:     floatOrNil(p.Prices.ReferencePrice),
			GeneralSale:          floatOrNil(p.Prices.SalePrice),
			StoreReference:       floatOrNil(p.Prices.StoreReferencePrice),
			StoreSale:            floatOrNil(p.Prices.StoreSalePrice),
			GeneralMarkup:        floatOrNil(p.Prices.Markup),
			StoreMarkup:          floatOrNil(p.Prices.StoreMarkup),
			ControlledPrice:      floatOrNil(p.Prices.ControlledPrice),
		}
	}
	return dto
}

// relevance prefers the reranked positional score over the SQL score.
func relevance(p catalog.Product) int {
	if p.FinalScore > 0 {
		return p.FinalScore
	}
	return p.Score
}

func availableClassifications(products []catalog.Product) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range products {
		if p.Classification == "" {
			continue
		}
		if _, ok := seen[p.Classification]; ok {
			continue
		}
		seen[p.Classification] = struct{}{}
		out = append(out, p.Classification)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// unmappedClassifications lists the source rows that resolved to DESCONHECIDO
// so operators can extend the canonical mapping table.
func unmappedClassifications(products []catalog.Product) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range products {
		if p.Classification != "DESCONHECIDO" {
			continue
		}
		id := "sem_id"
		if p.ClassificationID != 0 {
			id = strconv.FormatInt(p.ClassificationID, 10)
		}
		name := p.ClassificationName
		if name == "" {
			name = "sem_nome"
		}
		key := id + ":" + name
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func stringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func differentOrNil(s, reference string) *string {
	if s == "" || s == reference {
		return nil
	}
	return &s
}

func int64OrNil(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}

func floatOrNil(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
