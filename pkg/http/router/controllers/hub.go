package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/routehazard/pkg/datastructure"
	"github.com/lintang-b-s/routehazard/pkg/geo"
	"github.com/lintang-b-s/routehazard/pkg/tracker"
	"go.uber.org/zap"
)

type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id      uint
	hub     *Hub
	session *tracker.Session
}

func (u *User) readRequest() (*trackingRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &trackingRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// HandleTracking reads one tracking message from the connection and applies it
// to this user's session. each connection owns its session exclusively, so the
// session needs no locking of its own.
func (u *User) HandleTracking() error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	validate := validator.New()

	if err := validate.Struct(req); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		errResp := envelope{"error": map[string]string{
			"code":    http.StatusText(http.StatusBadRequest),
			"message": fmt.Sprintf("validation error: %v", vvString),
		}}
		return u.write(errResp)
	}

	resp, err := u.applyTracking(req)
	if err != nil {
		return u.writeTrackingError(err)
	}
	return u.write(envelope{"data": resp})
}

// applyTracking applies one validated tracking message to the session. a start
// message may carry the planned route polyline; attaching it makes every later
// snapshot report the off-route distance.
func (u *User) applyTracking(req *trackingRequest) (trackingResponse, error) {
	switch req.Action {
	case "start":
		if req.RoutePolyline != "" {
			coords, err := geo.DecodePolyline(req.RoutePolyline)
			if err != nil {
				return trackingResponse{}, err
			}
			u.session.AttachRoute(datastructure.NewPath(coords))
		}

		snapshot, err := u.session.Start(req.ToFix())
		if err != nil {
			return trackingResponse{}, err
		}
		return NewTrackingResponse(u.session.GetState().String(),
			snapshot, u.session.OffRouteDistanceMeter()), nil
	case "update":
		snapshot, err := u.session.Update(req.ToFix())
		if err != nil {
			return trackingResponse{}, err
		}
		return NewTrackingResponse(u.session.GetState().String(),
			snapshot, u.session.OffRouteDistanceMeter()), nil
	case "stop":
		snapshot, err := u.session.Stop()
		if err != nil {
			return trackingResponse{}, err
		}
		return NewTrackingResponse(u.session.GetState().String(),
			snapshot, -1), nil
	}
	return trackingResponse{}, fmt.Errorf("unknown tracking action %q", req.Action)
}

func (u *User) writeTrackingError(err error) error {
	return u.write(envelope{"error": map[string]string{
		"code":    http.StatusText(http.StatusBadRequest),
		"message": err.Error(),
	}})
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

type Hub struct {
	mu  sync.RWMutex
	seq uint
	us  []*User
	ns  map[uint]*User
	log *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	hub := &Hub{
		ns:  make(map[uint]*User),
		us:  make([]*User, 0),
		log: log,
	}

	return hub
}

// Register creates a user with a fresh idle tracking session for the
// connection.
func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:     h,
		conn:    conn,
		session: tracker.NewSession(h.log),
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.us = append(h.us, user)

	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	if _, oki := h.ns[user.id]; !oki {
		h.mu.Unlock()
		return
	}
	delete(h.ns, user.id)

	i := sort.Search(len(h.us), func(i int) bool {
		return h.us[i].id >= user.id
	})

	newUs := make([]*User, len(h.us)-1)
	copy(newUs[:i], h.us[:i])
	copy(newUs[i:], h.us[i+1:])
	h.us = newUs

	h.mu.Unlock()
}

func (h *Hub) RemoveAllUser() {
	h.mu.RLock()
	users := make([]*User, len(h.us))
	copy(users, h.us)
	h.mu.RUnlock()

	for _, user := range users {
		h.Remove(user)
	}
}
