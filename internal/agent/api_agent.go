package agent

import (
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "os"
    "regexp"
    "strings"
    "time"

    "github.com/google/uuid"

    "github.com/launchpad-ai/launchpad/internal/bus"
    "github.com/launchpad-ai/launchpad/internal/config"
    "github.com/launchpad-ai/launchpad/internal/database"
    "github.com/launchpad-ai/launchpad/internal/extract"
    "github.com/launchpad-ai/launchpad/internal/guard"
    "github.com/launchpad-ai/launchpad/internal/logx"
    "github.com/launchpad-ai/launchpad/internal/queue"
    "github.com/launchpad-ai/launchpad/internal/storage"
    "github.com/launchpad-ai/launchpad/internal/store"
    "github.com/launchpad-ai/launchpad/internal/ui"
)

// APIAgent expone el API HTTP: las operaciones de carrera entran aquí, se
// registran como tareas y viajan por el bus hacia el intake. Los recursos
// CRUD (perfiles, candidaturas, planes) van directos al store.
type APIAgent struct {
    bus      *bus.Bus
    inbox    chan bus.Message
    uiStore  *ui.UIStore
    env      *config.EnvVars
    st       store.Store
    docStore *storage.DocStore // nil si no hay S3 configurado
    pub      *queue.Publisher  // nil si no hay broker configurado
    // minimal auth and rate limiting
    apiKey string
    // naive fixed-window rate limiter per client key
    rl struct {
        Window  time.Duration
        Limit   int
        mu      chan struct{} // lightweight mutex using channel
        buckets map[string]*rateBucket
    }
}

func NewAPIAgent(b *bus.Bus, env *config.EnvVars, st store.Store, docStore *storage.DocStore, pub *queue.Publisher, uiStore *ui.UIStore) *APIAgent {
    a := &APIAgent{
        bus:      b,
        inbox:    make(chan bus.Message, 16),
        uiStore:  uiStore,
        env:      env,
        st:       st,
        docStore: docStore,
        pub:      pub,
        apiKey:   strings.TrimSpace(os.Getenv("API_KEY")),
    }
    // initialize rate limiter defaults
    a.rl.Window = 1 * time.Minute
    a.rl.Limit = 60
    a.rl.mu = make(chan struct{}, 1)
    a.rl.buckets = make(map[string]*rateBucket)
    return a
}

// Max request size for JSON bodies to protect the server (1MB)
const maxBodyBytes int64 = 1 << 20

// rateBucket tracks hits in a fixed window
type rateBucket struct {
    start time.Time
    hits  int
}

// acquireRL returns error if rate limit exceeded
func (a *APIAgent) acquireRL(key string) error {
    if key == "" {
        key = "anon"
    }
    // lock
    a.rl.mu <- struct{}{}
    defer func() { <-a.rl.mu }()

    b, ok := a.rl.buckets[key]
    now := time.Now()
    if !ok || now.Sub(b.start) >= a.rl.Window {
        a.rl.buckets[key] = &rateBucket{start: now, hits: 1}
        return nil
    }
    if b.hits >= a.rl.Limit {
        return errors.New("rate limit exceeded")
    }
    b.hits++
    return nil
}

// getClientKey picks an identifier for auth/rate limit: API key if present, else IP
func getClientKey(r *http.Request) string {
    // prefer provided API key to segregate limits per token
    if k := r.Header.Get("X-API-Key"); k != "" {
        return "key:" + k
    }
    if auth := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(auth), "bearer ") {
        return "key:" + strings.TrimSpace(auth[7:])
    }
    // fallback to remote addr (strip port)
    host := r.RemoteAddr
    if i := strings.LastIndex(host, ":"); i > 0 {
        host = host[:i]
    }
    return "ip:" + host
}

// checkAuth enforces API key when configured via API_KEY env var
func (a *APIAgent) checkAuth(r *http.Request) bool {
    if a.apiKey == "" {
        return true // auth disabled
    }
    if k := r.Header.Get("X-API-Key"); k != "" && k == a.apiKey {
        return true
    }
    auth := r.Header.Get("Authorization")
    if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
        token := strings.TrimSpace(auth[7:])
        return token == a.apiKey
    }
    return false
}

var idRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// Estados que puede tomar una candidatura.
var appStatuses = map[string]bool{
    "applied":      true,
    "interviewing": true,
    "offer":        true,
    "accepted":     true,
    "rejected":     true,
    "withdrawn":    true,
}

func (a *APIAgent) Inbox() chan bus.Message {
    return a.inbox
}

func (a *APIAgent) Start(ctx context.Context) error {
    defer func() {
        if r := recover(); r != nil {
            logx.Error("Api", "panic recovered in Start: %v", r)
        }
    }()
    for {
        select {
        case msg := <-a.inbox:
            func() {
                defer func() {
                    if r := recover(); r != nil {
                        logx.Error("Api", "panic recovered in dispatch: %v", r)
                    }
                }()
                a.dispatch(msg)
            }()

        case <-ctx.Done():
            return nil
        }
    }
}

func (a *APIAgent) dispatch(msg bus.Message) {
    // El API no recibe trabajo por el bus, solo lo emite.
    logx.Warn("Api", "mensaje interno ignorado: %#v", msg)
}

// gate aplica auth y rate limit; devuelve false si la request ya fue contestada.
func (a *APIAgent) gate(w http.ResponseWriter, r *http.Request) bool {
    if !a.checkAuth(r) {
        w.Header().Set("WWW-Authenticate", "Bearer, X-API-Key")
        http.Error(w, "unauthorized", http.StatusUnauthorized)
        return false
    }
    if err := a.acquireRL(getClientKey(r)); err != nil {
        http.Error(w, "too many requests", http.StatusTooManyRequests)
        return false
    }
    return true
}

// decodeBody valida content-type, limita el tamaño del body y parsea el JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
    ct := r.Header.Get("Content-Type")
    if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
        http.Error(w, "unsupported media type", http.StatusUnsupportedMediaType)
        return false
    }
    r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
    if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
        // If body too large, return 413; otherwise 400
        httpErr := http.StatusBadRequest
        if err.Error() == "http: request body too large" {
            httpErr = http.StatusRequestEntityTooLarge
        }
        http.Error(w, "invalid request body", httpErr)
        return false
    }
    return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

// submit registra la tarea, la manda al intake y contesta 202 inmediato.
func (a *APIAgent) submit(w http.ResponseWriter, operation string, params map[string]string, extra map[string]any) {
    id := randomID()

    logx.Info("Api", "new task id=%s op=%s user=%s", id, operation, params["user_id"])
    a.uiStore.AddEvent(id, "Api", "request", operation, "")

    // El contexto padre tiene que sobrevivir al handler: nunca r.Context(),
    // que muere al devolver el 202.
    _ = NewTaskContext(context.Background(), id, a.env.TaskTTL)

    a.bus.Send("intake", bus.Message{
        Type: "new_task",
        Payload: map[string]any{
            "id":        id,
            "operation": operation,
            "params":    params,
        },
    })

    // Respuesta asíncrona inmediata
    resp := map[string]any{"id": id, "status": "accepted"}
    for k, v := range extra {
        resp[k] = v
    }
    writeJSON(w, http.StatusAccepted, resp)
}

// RegisterHTTP registra endpoints HTTP
func (a *APIAgent) RegisterHTTP(mux *http.ServeMux) {
    mux.HandleFunc("/v1/chat", a.handleChat)                     // async chat turn
    mux.HandleFunc("/v1/skills/analyze", a.handleSkills)         // async skill analysis
    mux.HandleFunc("/v1/career/plan", a.handleCareerPlan)        // async career plan
    mux.HandleFunc("/v1/career/plans", a.handleCareerPlans)      // saved plans
    mux.HandleFunc("/v1/documents/generate", a.handleGenerateDoc) // async doc generation
    mux.HandleFunc("/v1/documents", a.handleGetDocument)         // stream stored doc
    mux.HandleFunc("/v1/jobs/search", a.handleJobSearch)         // async job search
    mux.HandleFunc("/v1/jobs/tips", a.handleJobTips)             // sync tips
    mux.HandleFunc("/v1/tasks", a.handleTask)                    // fetch task status/result
    mux.HandleFunc("/v1/profiles/", a.handleProfile)             // upsert/fetch profile
    mux.HandleFunc("/v1/applications", a.handleApplications)     // track/list applications
    mux.HandleFunc("/v1/applications/", a.handleApplicationUpdate)
    mux.HandleFunc("/v1/resumes", a.handleResumeSubmit) // enqueue resume analysis
    mux.HandleFunc("/v1/resumes/", a.handleResumeStatus)
}

type chatRequest struct {
    UserID    string `json:"user_id"`
    SessionID string `json:"session_id,omitempty"`
    Message   string `json:"message"`
}

func (a *APIAgent) handleChat(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if !a.gate(w, r) {
        return
    }
    var req chatRequest
    if !decodeBody(w, r, &req) {
        return
    }
    if req.UserID == "" || req.Message == "" {
        http.Error(w, "user_id y message requeridos", http.StatusBadRequest)
        return
    }

    extra := map[string]any{}
    if req.SessionID != "" {
        extra["session_id"] = req.SessionID
    }
    a.submit(w, guard.OpChat, map[string]string{
        "user_id":    req.UserID,
        "session_id": req.SessionID,
        "message":    req.Message,
    }, extra)
}

type skillsRequest struct {
    UserID     string `json:"user_id"`
    Input      string `json:"input"`
    ResumeText string `json:"resume_text,omitempty"`
}

func (a *APIAgent) handleSkills(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if !a.gate(w, r) {
        return
    }
    var req skillsRequest
    if !decodeBody(w, r, &req) {
        return
    }
    if req.UserID == "" || req.Input == "" {
        http.Error(w, "user_id e input requeridos", http.StatusBadRequest)
        return
    }

    a.submit(w, guard.OpSkills, map[string]string{
        "user_id":     req.UserID,
        "input":       req.Input,
        "resume_text": req.ResumeText,
    }, nil)
}

type careerRequest struct {
    UserID     string `json:"user_id"`
    Skills     string `json:"skills"`
    Interests  string `json:"interests,omitempty"`
    Experience string `json:"experience,omitempty"`
}

func (a *APIAgent) handleCareerPlan(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if !a.gate(w, r) {
        return
    }
    var req careerRequest
    if !decodeBody(w, r, &req) {
        return
    }
    if req.UserID == "" || req.Skills == "" {
        http.Error(w, "user_id y skills requeridos", http.StatusBadRequest)
        return
    }

    a.submit(w, guard.OpCareer, map[string]string{
        "user_id":    req.UserID,
        "skills":     req.Skills,
        "interests":  req.Interests,
        "experience": req.Experience,
    }, nil)
}

type docRequest struct {
    UserID         string `json:"user_id"`
    Type           string `json:"type"`
    PersonalInfo   string `json:"personal_info,omitempty"`
    Experience     string `json:"experience,omitempty"`
    Skills         string `json:"skills,omitempty"`
    Goals          string `json:"goals,omitempty"`
    Industry       string `json:"industry,omitempty"`
    JobDescription string `json:"job_description,omitempty"`
    Achievements   string `json:"achievements,omitempty"`
}

func (a *APIAgent) handleGenerateDoc(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if !a.gate(w, r) {
        return
    }
    var req docRequest
    if !decodeBody(w, r, &req) {
        return
    }
    if req.UserID == "" || req.Type == "" {
        http.Error(w, "user_id y type requeridos", http.StatusBadRequest)
        return
    }

    a.submit(w, guard.OpDocs, map[string]string{
        "user_id":         req.UserID,
        "type":            req.Type,
        "personal_info":   req.PersonalInfo,
        "experience":      req.Experience,
        "skills":          req.Skills,
        "goals":           req.Goals,
        "industry":        req.Industry,
        "job_description": req.JobDescription,
        "achievements":    req.Achievements,
    }, nil)
}

type jobSearchRequest struct {
    UserID          string `json:"user_id"`
    Role            string `json:"role"`
    Location        string `json:"location"`
    ExperienceLevel string `json:"experience_level,omitempty"`
}

func (a *APIAgent) handleJobSearch(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if !a.gate(w, r) {
        return
    }
    var req jobSearchRequest
    if !decodeBody(w, r, &req) {
        return
    }
    if req.UserID == "" || req.Role == "" || req.Location == "" {
        http.Error(w, "user_id, role y location requeridos", http.StatusBadRequest)
        return
    }

    a.submit(w, guard.OpJobs, map[string]string{
        "user_id":          req.UserID,
        "role":             req.Role,
        "location":         req.Location,
        "experience_level": req.ExperienceLevel,
    }, nil)
}

// handleJobTips es síncrono: espera el resultado antes de contestar.
// GET /v1/jobs/tips?role=...
func (a *APIAgent) handleJobTips(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if !a.gate(w, r) {
        return
    }
    role := r.URL.Query().Get("role")
    if role == "" {
        http.Error(w, "role requerido", http.StatusBadRequest)
        return
    }

    id := randomID()
    logx.Info("Api", "tips id=%s role='%s'", id, role)
    a.uiStore.AddEvent(id, "Api", "request", "tips "+role, "")
    _ = NewTaskContext(context.Background(), id, a.env.TaskTTL)

    a.bus.Send("intake", bus.Message{
        Type: "new_task",
        Payload: map[string]any{
            "id":        id,
            "operation": guard.OpJobTips,
            "params":    map[string]string{"role": role},
        },
    })

    res := waitForResult(id, a.env.ResultWait)
    deleteResult(id)

    status := http.StatusOK
    if res.Err != "" {
        status = http.StatusInternalServerError
    }
    writeJSON(w, status, map[string]any{
        "id":     id,
        "status": res.Status,
        "data":   res.Data,
        "error":  res.Err,
    })
}

// handleTask devuelve el estado/resultados de una tarea.
// GET /v1/tasks?id=...
func (a *APIAgent) handleTask(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if !a.gate(w, r) {
        return
    }
    id := r.URL.Query().Get("id")
    if id == "" {
        http.Error(w, "id requerido", http.StatusBadRequest)
        return
    }
    if !idRe.MatchString(id) {
        http.Error(w, "id inválido", http.StatusBadRequest)
        return
    }

    // Consultar si ya hay resultado
    if res, ok := getResult(id); ok {
        // Limpiar almacenamiento para evitar fugas
        deleteResult(id)
        writeJSON(w, http.StatusOK, map[string]any{
            "id":     id,
            "status": res.Status,
            "data":   res.Data,
            "error":  res.Err,
        })
        return
    }

    // Aún pendiente
    writeJSON(w, http.StatusOK, map[string]any{
        "id":     id,
        "status": "pending",
    })
}

type profileRequest struct {
    Skills     string `json:"skills"`
    Interests  string `json:"interests"`
    Experience string `json:"experience"`
    Goals      string `json:"goals"`
    Summary    string `json:"summary"`
}

// handleProfile gestiona PUT/GET /v1/profiles/{user_id}.
func (a *APIAgent) handleProfile(w http.ResponseWriter, r *http.Request) {
    userID := strings.TrimPrefix(r.URL.Path, "/v1/profiles/")
    if userID == "" || strings.Contains(userID, "/") {
        http.NotFound(w, r)
        return
    }
    if !idRe.MatchString(userID) {
        http.Error(w, "user_id inválido", http.StatusBadRequest)
        return
    }
    if !a.gate(w, r) {
        return
    }

    switch r.Method {
    case http.MethodPut:
        var req profileRequest
        if !decodeBody(w, r, &req) {
            return
        }
        p := database.Profile{
            UserID:     userID,
            Skills:     req.Skills,
            Interests:  req.Interests,
            Experience: req.Experience,
            Goals:      req.Goals,
            Summary:    req.Summary,
        }
        if err := a.st.UpsertProfile(r.Context(), p); err != nil {
            logx.Error("Api", "upsert profile %s: %v", userID, err)
            http.Error(w, "storage error", http.StatusInternalServerError)
            return
        }
        writeJSON(w, http.StatusOK, map[string]any{"user_id": userID, "status": "saved"})

    case http.MethodGet:
        p, err := a.st.GetProfile(r.Context(), userID)
        if errors.Is(err, store.ErrNotFound) {
            http.Error(w, "profile not found", http.StatusNotFound)
            return
        }
        if err != nil {
            logx.Error("Api", "get profile %s: %v", userID, err)
            http.Error(w, "storage error", http.StatusInternalServerError)
            return
        }
        writeJSON(w, http.StatusOK, map[string]any{
            "user_id":    p.UserID,
            "skills":     p.Skills,
            "interests":  p.Interests,
            "experience": p.Experience,
            "goals":      p.Goals,
            "summary":    p.Summary,
            "created_at": p.CreatedAt,
            "updated_at": p.UpdatedAt,
        })

    default:
        w.WriteHeader(http.StatusMethodNotAllowed)
    }
}

type applicationRequest struct {
    UserID   string `json:"user_id"`
    JobTitle string `json:"job_title"`
    Company  string `json:"company"`
    Location string `json:"location,omitempty"`
    Notes    string `json:"notes,omitempty"`
}

// handleApplications gestiona POST (nueva candidatura) y GET (listado por usuario).
func (a *APIAgent) handleApplications(w http.ResponseWriter, r *http.Request) {
    if !a.gate(w, r) {
        return
    }

    switch r.Method {
    case http.MethodPost:
        var req applicationRequest
        if !decodeBody(w, r, &req) {
            return
        }
        if req.UserID == "" || req.JobTitle == "" || req.Company == "" {
            http.Error(w, "user_id, job_title y company requeridos", http.StatusBadRequest)
            return
        }
        if !idRe.MatchString(req.UserID) {
            http.Error(w, "user_id inválido", http.StatusBadRequest)
            return
        }

        now := time.Now().UTC()
        app := database.Application{
            ID:        uuid.New(),
            UserID:    req.UserID,
            JobTitle:  req.JobTitle,
            Company:   req.Company,
            Location:  req.Location,
            Status:    "applied",
            Notes:     req.Notes,
            AppliedAt: now,
            UpdatedAt: now,
        }
        if err := a.st.SaveApplication(r.Context(), app); err != nil {
            logx.Error("Api", "save application user=%s: %v", req.UserID, err)
            http.Error(w, "storage error", http.StatusInternalServerError)
            return
        }
        writeJSON(w, http.StatusCreated, map[string]any{
            "application_id": app.ID.String(),
            "status":         app.Status,
            "applied_at":     app.AppliedAt,
        })

    case http.MethodGet:
        userID := r.URL.Query().Get("user_id")
        if userID == "" || !idRe.MatchString(userID) {
            http.Error(w, "user_id inválido", http.StatusBadRequest)
            return
        }
        apps, err := a.st.ApplicationsByUser(r.Context(), userID)
        if err != nil {
            logx.Error("Api", "list applications user=%s: %v", userID, err)
            http.Error(w, "storage error", http.StatusInternalServerError)
            return
        }
        items := make([]map[string]any, 0, len(apps))
        for _, app := range apps {
            items = append(items, map[string]any{
                "id":         app.ID.String(),
                "job_title":  app.JobTitle,
                "company":    app.Company,
                "location":   app.Location,
                "status":     app.Status,
                "notes":      app.Notes,
                "applied_at": app.AppliedAt,
                "updated_at": app.UpdatedAt,
            })
        }
        writeJSON(w, http.StatusOK, map[string]any{
            "applications": items,
            "count":        len(items),
        })

    default:
        w.WriteHeader(http.StatusMethodNotAllowed)
    }
}

// handleApplicationUpdate cambia estado/notas: PATCH /v1/applications/{id}.
func (a *APIAgent) handleApplicationUpdate(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPatch {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if !a.gate(w, r) {
        return
    }
    appID, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/v1/applications/"))
    if err != nil {
        http.Error(w, "application id inválido", http.StatusBadRequest)
        return
    }

    var req struct {
        Status string `json:"status"`
        Notes  string `json:"notes,omitempty"`
    }
    if !decodeBody(w, r, &req) {
        return
    }
    if req.Status == "" {
        http.Error(w, "status requerido", http.StatusBadRequest)
        return
    }
    if !appStatuses[req.Status] {
        http.Error(w, "status desconocido", http.StatusBadRequest)
        return
    }

    err = a.st.UpdateApplicationStatus(r.Context(), appID, req.Status, req.Notes)
    if errors.Is(err, store.ErrNotFound) {
        http.Error(w, "application not found", http.StatusNotFound)
        return
    }
    if err != nil {
        logx.Error("Api", "update application %s: %v", appID, err)
        http.Error(w, "storage error", http.StatusInternalServerError)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{
        "id":     appID.String(),
        "status": req.Status,
    })
}

// handleCareerPlans lista los planes guardados: GET /v1/career/plans?user_id=...
func (a *APIAgent) handleCareerPlans(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if !a.gate(w, r) {
        return
    }
    userID := r.URL.Query().Get("user_id")
    if userID == "" || !idRe.MatchString(userID) {
        http.Error(w, "user_id inválido", http.StatusBadRequest)
        return
    }

    plans, err := a.st.PlansByUser(r.Context(), userID)
    if err != nil {
        logx.Error("Api", "list plans user=%s: %v", userID, err)
        http.Error(w, "storage error", http.StatusInternalServerError)
        return
    }
    items := make([]map[string]any, 0, len(plans))
    for _, p := range plans {
        items = append(items, map[string]any{
            "id":         p.ID.String(),
            "title":      p.Title,
            "status":     p.Status,
            "content":    p.Content,
            "created_at": p.CreatedAt,
        })
    }
    writeJSON(w, http.StatusOK, map[string]any{
        "plans": items,
        "count": len(items),
    })
}

// handleGetDocument sirve un documento generado desde S3.
// GET /v1/documents?user_id=...&key=...
func (a *APIAgent) handleGetDocument(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if !a.gate(w, r) {
        return
    }
    if a.docStore == nil {
        http.Error(w, "document storage not configured", http.StatusServiceUnavailable)
        return
    }
    userID := r.URL.Query().Get("user_id")
    key := r.URL.Query().Get("key")
    if userID == "" || !idRe.MatchString(userID) {
        http.Error(w, "user_id inválido", http.StatusBadRequest)
        return
    }
    if !storage.ValidDocKey(key) {
        http.Error(w, "key inválida", http.StatusBadRequest)
        return
    }
    // Cada usuario solo lee bajo su propio prefijo.
    if !strings.HasPrefix(key, userID+"/") {
        http.Error(w, "forbidden", http.StatusForbidden)
        return
    }

    data, err := a.docStore.Get(r.Context(), key)
    if err != nil {
        http.Error(w, "document not found", http.StatusNotFound)
        return
    }
    w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
    _, _ = w.Write(data)
}

type resumeRequest struct {
    UserID    string `json:"user_id"`
    ObjectKey string `json:"object_key"`
    Mime      string `json:"mime"`
    Goal      string `json:"goal,omitempty"`
}

// handleResumeSubmit encola el análisis de un currículum ya subido a S3.
// POST /v1/resumes
func (a *APIAgent) handleResumeSubmit(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodPost {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if !a.gate(w, r) {
        return
    }
    if a.pub == nil {
        http.Error(w, "resume pipeline not configured", http.StatusServiceUnavailable)
        return
    }
    var req resumeRequest
    if !decodeBody(w, r, &req) {
        return
    }
    if req.UserID == "" || req.ObjectKey == "" || req.Mime == "" {
        http.Error(w, "user_id, object_key y mime requeridos", http.StatusBadRequest)
        return
    }
    if !idRe.MatchString(req.UserID) {
        http.Error(w, "user_id inválido", http.StatusBadRequest)
        return
    }
    if !storage.ValidDocKey(req.ObjectKey) {
        http.Error(w, "object_key inválida", http.StatusBadRequest)
        return
    }
    if !extract.Supported(req.Mime) {
        http.Error(w, "unsupported file type", http.StatusUnsupportedMediaType)
        return
    }

    job := database.ResumeJob{
        ID:        uuid.New(),
        UserID:    req.UserID,
        ObjectKey: req.ObjectKey,
        Mime:      req.Mime,
        Goal:      req.Goal,
        Status:    "queued",
    }
    if err := a.st.CreateResumeJob(r.Context(), job); err != nil {
        logx.Error("Api", "create resume job user=%s: %v", req.UserID, err)
        http.Error(w, "storage error", http.StatusInternalServerError)
        return
    }

    err := a.pub.PublishJob(queue.JobMessage{
        JobID:     job.ID.String(),
        UserID:    job.UserID,
        ObjectKey: job.ObjectKey,
        Mime:      job.Mime,
        Goal:      job.Goal,
    })
    if err != nil {
        logx.Error("Api", "publish resume job %s: %v", job.ID, err)
        _ = a.st.UpdateResumeJobStatus(r.Context(), job.ID, "failed")
        http.Error(w, "queue error", http.StatusBadGateway)
        return
    }

    // primer evento del stream de estado; los siguientes los manda el worker
    if err := a.pub.PublishUpdate(job.ID.String(), map[string]any{
        "job_id": job.ID.String(),
        "status": "queued",
    }); err != nil {
        logx.Warn("Api", "publish queued update %s: %v", job.ID, err)
    }

    logx.Info("Api", "resume job queued id=%s user=%s", job.ID, job.UserID)
    writeJSON(w, http.StatusAccepted, map[string]any{
        "job_id": job.ID.String(),
        "status": "queued",
    })
}

// handleResumeStatus devuelve el estado del análisis y, si terminó, los resultados.
// GET /v1/resumes/{id}
func (a *APIAgent) handleResumeStatus(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    if !a.gate(w, r) {
        return
    }
    jobID, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/v1/resumes/"))
    if err != nil {
        http.Error(w, "job id inválido", http.StatusBadRequest)
        return
    }

    job, err := a.st.GetResumeJob(r.Context(), jobID)
    if errors.Is(err, store.ErrNotFound) {
        http.Error(w, "job not found", http.StatusNotFound)
        return
    }
    if err != nil {
        logx.Error("Api", "get resume job %s: %v", jobID, err)
        http.Error(w, "storage error", http.StatusInternalServerError)
        return
    }

    resp := map[string]any{
        "job_id":     job.ID.String(),
        "user_id":    job.UserID,
        "object_key": job.ObjectKey,
        "status":     job.Status,
        "created_at": job.CreatedAt,
        "updated_at": job.UpdatedAt,
    }
    if job.Status == "completed" {
        if analysis, err := a.st.GetResumeAnalysis(r.Context(), jobID); err == nil {
            resp["results"] = analysis.Results
        }
    }
    writeJSON(w, http.StatusOK, resp)
}
