// Package backendtest runs an in-memory stand-in for the storefront backend
// REST API, for tests of code built on backend.Client.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"StorefrontAPI/internal/model"
)

type User struct {
	Password string
	Token    string
	Role     string
	Profile  model.UserProfile
}

type failure struct {
	status  int
	message string
}

// Server is safe for concurrent use. Exported fields may be seeded before the
// first request; use the accessors afterwards.
type Server struct {
	srv *httptest.Server
	mu  sync.Mutex

	Users     map[string]*User // keyed by identifier
	Products  map[int64]model.Product
	Cart      []model.CartEntry
	Addresses []model.Address
	Orders    []model.Order

	// HideNewAddresses keeps created addresses out of GET /address.
	HideNewAddresses bool

	OrderRequests []model.OrderRequest
	nextID        int64
	failures      map[string]failure
	calls         map[string]int
}

func NewServer(t testing.TB) *Server {
	s := &Server{
		Users: map[string]*User{
			"alice": {Password: "password123", Token: "tok-alice", Role: model.RoleUser,
				Profile: model.UserProfile{ID: 1, Username: "alice", Email: "alice@example.com", FirstName: "Alice", PhoneNumber: "9876543210"}},
			"admin": {Password: "adminpass", Token: "tok-admin", Role: model.RoleAdmin,
				Profile: model.UserProfile{ID: 2, Username: "admin", Email: "admin@example.com", FirstName: "Root"}},
		},
		Products: map[int64]model.Product{},
		nextID:   1000,
		failures: map[string]failure{},
		calls:    map[string]int{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/register", s.register)
	mux.HandleFunc("POST /api/login", s.login)
	mux.HandleFunc("GET /api/profile", s.auth(s.getProfile))
	mux.HandleFunc("PUT /api/profile", s.auth(s.putProfile))
	mux.HandleFunc("GET /api/products", s.listProducts)
	mux.HandleFunc("GET /api/products/{id}", s.getProduct)
	mux.HandleFunc("POST /api/products", s.auth(s.createProduct))
	mux.HandleFunc("PUT /api/products/{id}", s.auth(s.updateProduct))
	mux.HandleFunc("DELETE /api/products/{id}", s.auth(s.deleteProduct))
	mux.HandleFunc("GET /api/cart", s.auth(s.getCart))
	mux.HandleFunc("POST /api/cart", s.auth(s.addCart))
	mux.HandleFunc("PUT /api/cart", s.auth(s.putCart))
	mux.HandleFunc("DELETE /api/cart/{id}", s.auth(s.deleteCart))
	mux.HandleFunc("GET /api/address", s.auth(s.listAddresses))
	mux.HandleFunc("POST /api/address", s.auth(s.addAddress))
	mux.HandleFunc("PUT /api/address/{id}", s.auth(s.editAddress))
	mux.HandleFunc("DELETE /api/address/{id}", s.auth(s.deleteAddress))
	mux.HandleFunc("GET /api/orders", s.auth(s.listOrders))
	mux.HandleFunc("POST /api/orders", s.auth(s.createOrder))

	s.srv = httptest.NewServer(s.intercept(mux))
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the API base to hand to backend.NewClient.
func (s *Server) URL() string {
	return s.srv.URL + "/api"
}

// Fail makes every request to "METHOD /path" (path without /api) answer with
// status and message until Recover is called.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

func (s *Server) Recover(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, method+" "+path)
}

// Calls counts requests to "METHOD /path", including failed ones.
func (s *Server) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+path]
}

func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func (s *Server) CartEntries() []model.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CartEntry(nil), s.Cart...)
}

func (s *Server) SubmittedOrders() []model.OrderRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderRequest(nil), s.OrderRequests...)
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api")
		s.mu.Lock()
		s.calls[key]++
		f, failing := s.failures[key]
		s.mu.Unlock()
		if failing {
			writeJSON(w, f.status, map[string]string{"message": f.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next func(http.ResponseWriter, *http.Request, *User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		var u *User
		for _, cand := range s.Users {
			if cand.Token != "" && cand.Token == token {
				u = cand
			}
		}
		s.mu.Unlock()
		if u == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token is invalid"})
			return
		}
		next(w, r, u)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in model.RegisterUserData
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.Users[in.Username]; taken {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "Username already exists"})
		return
	}
	s.nextID++
	s.Users[in.Username] = &User{
		Password: in.Password,
		Token:    "tok-" + in.Username,
		Role:     model.RoleUser,
		Profile:  model.UserProfile{ID: s.nextID, Username: in.Username, Email: in.Email, FirstName: in.FirstName},
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&in)
	s.mu.Lock()
	u, ok := s.Users[in.Identifier]
	s.mu.Unlock()
	if !ok || u.Password != in.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, model.LoginResponse{AccessToken: u.Token, Role: u.Role})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request, u *User) {
	s.mu.Lock()
	p := u.Profile
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request, u *User) {
	var in model.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	s.mu.Lock()
	in.ID = u.Profile.ID
	u.Profile = in
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"message": "Profile updated"})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		out = append(out, p)
	}
	s.mu.Unlock()
	sortProducts(out)
	writeJSON(w, http.StatusOK, out)
}

func sortProducts(ps []model.Product) {
	for i := 1; i < len(ps); i++ {
		for j := i; j > 0 && ps[j].ID < ps[j-1].ID; j-- {
			ps[j], ps[j-1] = ps[j-1], ps[j]
		}
	}
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p, ok := s.Products[pathID(r)]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request, u *User) {
	var in model.Product
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	s.mu.Lock()
	s.nextID++
	in.ID = s.nextID
	s.Products[in.ID] = in
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Product added", "product_id": in.ID})
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request, u *User) {
	var in model.Product
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Products[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		return
	}
	in.ID = id
	s.Products[id] = in
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product updated"})
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request, u *User) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Products[id]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		return
	}
	delete(s.Products, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request, u *User) {
	s.mu.Lock()
	out := append([]model.CartEntry{}, s.Cart...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

type cartBody struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (s *Server) addCart(w http.ResponseWriter, r *http.Request, u *User) {
	var in cartBody
	_ = json.NewDecoder(r.Body).Decode(&in)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Products[in.ProductID]; !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		return
	}
	for i := range s.Cart {
		if s.Cart[i].ProductID == in.ProductID {
			s.Cart[i].Quantity += in.Quantity
			writeJSON(w, http.StatusOK, map[string]string{"message": "Cart updated"})
			return
		}
	}
	s.nextID++
	s.Cart = append(s.Cart, model.CartEntry{ID: s.nextID, ProductID: in.ProductID, Quantity: in.Quantity})
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Product added to cart"})
}

func (s *Server) putCart(w http.ResponseWriter, r *http.Request, u *User) {
	var in cartBody
	_ = json.NewDecoder(r.Body).Decode(&in)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Cart {
		if s.Cart[i].ProductID == in.ProductID {
			s.Cart[i].Quantity = in.Quantity
			writeJSON(w, http.StatusOK, map[string]string{"message": "Cart item updated"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Cart item not found"})
}

func (s *Server) deleteCart(w http.ResponseWriter, r *http.Request, u *User) {
	pid := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Cart {
		if s.Cart[i].ProductID == pid {
			s.Cart = append(s.Cart[:i], s.Cart[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Cart item deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Cart item not found"})
}

func (s *Server) listAddresses(w http.ResponseWriter, r *http.Request, u *User) {
	s.mu.Lock()
	out := append([]model.Address{}, s.Addresses...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func addressFrom(id int64, in model.AddressInput) model.Address {
	return model.Address{
		ID:          id,
		HouseNo:     in.HouseNo,
		RoadName:    in.RoadName,
		Landmark:    in.Landmark,
		PinCode:     in.PinCode,
		City:        in.City,
		State:       in.State,
		AddressType: in.AddressType,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}

func (s *Server) addAddress(w http.ResponseWriter, r *http.Request, u *User) {
	var in model.AddressInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	if !s.HideNewAddresses {
		s.Addresses = append(s.Addresses, addressFrom(s.nextID, in))
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Address added", "address_id": s.nextID})
}

func (s *Server) editAddress(w http.ResponseWriter, r *http.Request, u *User) {
	var in model.AddressInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Addresses {
		if s.Addresses[i].ID == id {
			created := s.Addresses[i].CreatedAt
			s.Addresses[i] = addressFrom(id, in)
			s.Addresses[i].CreatedAt = created
			writeJSON(w, http.StatusOK, map[string]string{"message": "Address updated"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Address not found"})
}

func (s *Server) deleteAddress(w http.ResponseWriter, r *http.Request, u *User) {
	id := pathID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Addresses {
		if s.Addresses[i].ID == id {
			s.Addresses = append(s.Addresses[:i], s.Addresses[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Address deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Address not found"})
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request, u *User) {
	s.mu.Lock()
	out := append([]model.Order{}, s.Orders...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request, u *User) {
	var in model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid body"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.OrderRequests = append(s.OrderRequests, in)
	s.nextID++
	order := model.Order{ID: s.nextID, CreatedAt: time.Now().UTC().Format(time.RFC3339)}
	for _, it := range in.Items {
		p := s.Products[it.ProductID]
		order.Items = append(order.Items, model.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: p.Price})
		order.TotalAmount += p.Price * float64(it.Quantity)
	}
	s.Orders = append(s.Orders, order)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Order placed successfully"})
}
