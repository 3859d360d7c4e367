package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"floorplan-studio-backend/internal/canvas"
	"floorplan-studio-backend/internal/editor"
	"floorplan-studio-backend/internal/geometry"
	"floorplan-studio-backend/internal/libraries"
	"floorplan-studio-backend/internal/repo"
)

// Editing defaults for blank sessions that don't specify a scale.
const (
	defaultPixelsPerMeter = 80
	defaultGridSpacingPx  = 20
)

// editorState is one connection's open floor: the live session plus where a
// save should land.
type editorState struct {
	session     *editor.Session
	buildingID  uuid.UUID
	floorNumber int
	name        string
}

// EditorHandler dispatches websocket gestures onto per-connection editing
// sessions. Each connection's gestures arrive serially from its read loop;
// the map itself is shared across connections and locked.
type EditorHandler struct {
	planRepo     repo.FloorPlanRepoInterface
	buildingRepo repo.BuildingRepoInterface

	mu       sync.Mutex
	sessions map[string]*editorState
}

func NewEditorHandler(planRepo repo.FloorPlanRepoInterface, buildingRepo repo.BuildingRepoInterface) *EditorHandler {
	return &EditorHandler{
		planRepo:     planRepo,
		buildingRepo: buildingRepo,
		sessions:     make(map[string]*editorState),
	}
}

func (h *EditorHandler) state(client *libraries.Client) *editorState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[client.ID]
}

func (h *EditorHandler) setState(client *libraries.Client, st *editorState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.sessions[client.ID]; ok && old != nil {
		old.session.Close()
	}
	if st == nil {
		delete(h.sessions, client.ID)
		return
	}
	h.sessions[client.ID] = st
}

// ClientClosed releases the session when a connection goes away, which also
// tears down any in-progress drag.
func (h *EditorHandler) ClientClosed(client *libraries.Client) {
	h.setState(client, nil)
}

// ProcessGesture routes one inbound frame to the session.
func (h *EditorHandler) ProcessGesture(hub *libraries.Hub, client *libraries.Client, msgType libraries.WebSocketMessageType, data json.RawMessage) {
	if err := h.handle(hub, client, msgType, data); err != nil {
		libraries.SendErrorMessage(hub, client, err.Error())
	}
}

func (h *EditorHandler) handle(hub *libraries.Hub, client *libraries.Client, msgType libraries.WebSocketMessageType, data json.RawMessage) error {
	switch msgType {
	case libraries.WebSocketMessageTypeOpenPlan:
		return h.openPlan(hub, client, data)
	case libraries.WebSocketMessageTypeOpenBlank:
		return h.openBlank(hub, client, data)
	}

	st := h.state(client)
	if st == nil {
		return errors.New("no floor is open; send open_plan or open_blank first")
	}

	switch msgType {
	case libraries.WebSocketMessageTypeDropBuilding:
		var p struct {
			Preset string  `json:"preset"`
			X      float64 `json:"x"`
			Y      float64 `json:"y"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.New("invalid drop_building payload")
		}
		if _, err := st.session.DropBuilding(editor.Preset(p.Preset), geometry.Point{X: p.X, Y: p.Y}); err != nil {
			return err
		}

	case libraries.WebSocketMessageTypeDropFixture:
		var p struct {
			FixtureType string  `json:"fixtureType"`
			X           float64 `json:"x"`
			Y           float64 `json:"y"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.New("invalid drop_fixture payload")
		}
		if _, err := st.session.DropFixture(canvas.FixtureType(p.FixtureType), geometry.Point{X: p.X, Y: p.Y}); err != nil {
			return err
		}

	case libraries.WebSocketMessageTypeSetViewport:
		var p struct {
			PanX float64 `json:"panX"`
			PanY float64 `json:"panY"`
			Zoom float64 `json:"zoom"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.New("invalid set_viewport payload")
		}
		if err := st.session.SetViewport(editor.Viewport{PanX: p.PanX, PanY: p.PanY, Zoom: p.Zoom}); err != nil {
			return err
		}

	case libraries.WebSocketMessageTypeSelect:
		var p struct {
			NodeID string `json:"nodeId"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.New("invalid select payload")
		}
		if p.NodeID == "" {
			if err := st.session.Select(uuid.Nil); err != nil {
				return err
			}
			break
		}
		id, err := uuid.Parse(p.NodeID)
		if err != nil {
			return errors.New("invalid node id")
		}
		if err := st.session.Select(id); err != nil {
			return err
		}

	case libraries.WebSocketMessageTypeDragStart:
		var p struct {
			NodeID      string  `json:"nodeId"`
			VertexIndex int     `json:"vertexIndex"`
			X           float64 `json:"x"`
			Y           float64 `json:"y"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.New("invalid drag_start payload")
		}
		id, err := uuid.Parse(p.NodeID)
		if err != nil {
			return errors.New("invalid node id")
		}
		if err := st.session.BeginDrag(id, p.VertexIndex, geometry.Point{X: p.X, Y: p.Y}); err != nil {
			return err
		}

	case libraries.WebSocketMessageTypeDragMove:
		var p struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.New("invalid drag_move payload")
		}
		if err := st.session.UpdateDrag(geometry.Point{X: p.X, Y: p.Y}); err != nil {
			return err
		}

	case libraries.WebSocketMessageTypeDragEnd:
		st.session.EndDrag()

	case libraries.WebSocketMessageTypeLabelOpen:
		var p struct {
			NodeID string `json:"nodeId"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.New("invalid label_open payload")
		}
		id, err := uuid.Parse(p.NodeID)
		if err != nil {
			return errors.New("invalid node id")
		}
		if err := st.session.OpenLabelEdit(id); err != nil {
			return err
		}

	case libraries.WebSocketMessageTypeLabelCommit:
		var p struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.New("invalid label_commit payload")
		}
		if err := st.session.CommitLabel(p.Text); err != nil {
			return err
		}

	case libraries.WebSocketMessageTypeLabelCancel:
		st.session.CancelLabelEdit()

	case libraries.WebSocketMessageTypeResize:
		var p struct {
			NodeID       string  `json:"nodeId"`
			LengthMeters float64 `json:"lengthMeters"`
			WidthMeters  float64 `json:"widthMeters"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.New("invalid resize payload")
		}
		id, err := uuid.Parse(p.NodeID)
		if err != nil {
			return errors.New("invalid node id")
		}
		if err := st.session.ResizeMeters(id, p.LengthMeters, p.WidthMeters); err != nil {
			return err
		}

	case libraries.WebSocketMessageTypeRemoveNode:
		var p struct {
			NodeID string `json:"nodeId"`
		}
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.New("invalid remove_node payload")
		}
		id, err := uuid.Parse(p.NodeID)
		if err != nil {
			return errors.New("invalid node id")
		}
		if err := st.session.RemoveNode(id); err != nil {
			return err
		}

	case libraries.WebSocketMessageTypeSave:
		return h.save(hub, client, st, data)

	case libraries.WebSocketMessageTypeState:
		h.sendState(hub, client, st)
		return nil

	default:
		return fmt.Errorf("unsupported gesture %q", msgType)
	}

	h.sendState(hub, client, st)
	return nil
}

func (h *EditorHandler) openPlan(hub *libraries.Hub, client *libraries.Client, data json.RawMessage) error {
	var p struct {
		PlanID string `json:"planId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.New("invalid open_plan payload")
	}
	planId, err := uuid.Parse(p.PlanID)
	if err != nil {
		return errors.New("invalid plan id")
	}

	plan, err := h.planRepo.GetByID(planId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New("layout not found")
	} else if err != nil {
		log.Println(err, "Error loading layout for editor")
		return errors.New("failed to load layout")
	}
	doc, err := plan.Document()
	if err != nil {
		log.Println(err, "Error decoding layout for editor")
		return errors.New("stored layout is unreadable")
	}

	session, err := editor.NewSession(defaultPixelsPerMeter, defaultGridSpacingPx, nil)
	if err != nil {
		return err
	}
	if err := session.LoadDocument(doc); err != nil {
		return err
	}

	st := &editorState{
		session:     session,
		buildingID:  plan.BuildingID,
		floorNumber: plan.FloorNumber,
		name:        plan.Name,
	}
	h.setState(client, st)
	h.sendState(hub, client, st)
	return nil
}

func (h *EditorHandler) openBlank(hub *libraries.Hub, client *libraries.Client, data json.RawMessage) error {
	var p struct {
		BuildingID     string  `json:"buildingId"`
		FloorNumber    int     `json:"floorNumber"`
		PixelsPerMeter float64 `json:"pixelsPerMeter"`
		GridSpacingPx  float64 `json:"gridSpacingPx"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return errors.New("invalid open_blank payload")
	}
	buildingId, err := uuid.Parse(p.BuildingID)
	if err != nil {
		return errors.New("invalid building id")
	}

	building, err := h.buildingRepo.GetBuildingByID(buildingId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New("building not found")
	} else if err != nil {
		log.Println(err, "Error loading building for editor")
		return errors.New("failed to load building")
	}
	if p.FloorNumber < 1 || p.FloorNumber > building.FloorLimit() {
		return fmt.Errorf("floor number must be between 1 and %d", building.FloorLimit())
	}

	ppm := p.PixelsPerMeter
	if ppm == 0 {
		ppm = defaultPixelsPerMeter
	}
	grid := p.GridSpacingPx
	if grid == 0 {
		grid = defaultGridSpacingPx
	}
	session, err := editor.NewSession(ppm, grid, nil)
	if err != nil {
		return err
	}

	st := &editorState{
		session:     session,
		buildingID:  buildingId,
		floorNumber: p.FloorNumber,
	}
	h.setState(client, st)
	h.sendState(hub, client, st)
	return nil
}

func (h *EditorHandler) save(hub *libraries.Hub, client *libraries.Client, st *editorState, data json.RawMessage) error {
	var p struct {
		Name string `json:"name"`
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p); err != nil {
			return errors.New("invalid save payload")
		}
	}
	if p.Name != "" {
		st.name = p.Name
	}
	if st.name == "" {
		return errors.New("layout name is required")
	}

	doc, err := st.session.BeginSave()
	if err != nil {
		return err
	}
	defer st.session.FinishSave()

	plan, err := h.planRepo.CreateVersion(st.buildingID, st.floorNumber, st.name, doc)
	if err != nil {
		// The session model is untouched; the operator can retry.
		log.Println(err, "Error persisting layout version")
		return errors.New("failed to save layout")
	}

	libraries.SendWebSocketMessage(hub, client, libraries.WebSocketMessageTypeSaved, fiber.Map{
		"planId":  plan.ID,
		"version": plan.Version,
	})
	return nil
}

func (h *EditorHandler) sendState(hub *libraries.Hub, client *libraries.Client, st *editorState) {
	doc := st.session.Document()
	selectedID := ""
	if node, ok := st.session.Selected(); ok {
		selectedID = node.NodeID().String()
	}
	libraries.SendWebSocketMessage(hub, client, libraries.WebSocketMessageTypeState, fiber.Map{
		"buildingId":  st.buildingID,
		"floorNumber": st.floorNumber,
		"name":        st.name,
		"layout":      doc,
		"selected":    selectedID,
		"dragging":    st.session.Dragging(),
		"saving":      st.session.Saving(),
	})
}
