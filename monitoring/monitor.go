// Package monitoring serves a built topology over HTTP so that it can be
// inspected while the process is alive.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/memhier/datarecording"
	"github.com/sarchlab/memhier/noc/wiring"
	"github.com/sarchlab/memhier/sim"
)

// Monitor answers questions about the components and links of a topology.
type Monitor struct {
	order      []string
	components map[string]sim.Component
	links      []*wiring.Link

	portNumber      int
	profileDuration time.Duration
	server          *http.Server
}

// NewMonitor creates a Monitor without any component.
func NewMonitor() *Monitor {
	return &Monitor{
		components:      make(map[string]sim.Component),
		profileDuration: time.Second,
	}
}

// WithPortNumber sets the port to listen on. Privileged ports are replaced by
// a random port.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1024 {
		log.Printf("monitoring: port %d is reserved, using a random port",
			portNumber)

		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterComponent makes a component visible through the API. Registering
// a name twice keeps the first component.
func (m *Monitor) RegisterComponent(c sim.Component) {
	if _, found := m.components[c.Name()]; found {
		return
	}

	m.order = append(m.order, c.Name())
	m.components[c.Name()] = c
}

// RegisterLink makes a link visible through the API.
func (m *Monitor) RegisterLink(l *wiring.Link) {
	m.links = append(m.links, l)
}

// Router returns the handler of the API.
func (m *Monitor) Router() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Methods(http.MethodGet).Subrouter()

	api.Handle("/list_components", apiFunc(m.listComponents))
	api.Handle("/component/{name}", apiFunc(m.serializeComponent))
	api.Handle("/field", apiFunc(m.serializeField)).
		Queries("comp", "{comp}", "field", "{field}")
	api.Handle("/ports/{name}", apiFunc(m.listPorts))
	api.Handle("/links", apiFunc(m.listLinks))
	api.Handle("/resource", apiFunc(m.reportResources))
	api.Handle("/profile", apiFunc(m.collectProfile))

	return r
}

// StartServer listens on the configured port and serves the API in the
// background. It returns the base URL of the server.
func (m *Monitor) StartServer() (string, error) {
	listener, err := net.Listen("tcp", ":"+strconv.Itoa(m.portNumber))
	if err != nil {
		return "", errors.Wrap(err, "starting monitoring server")
	}

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		err := m.server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("monitoring: %v", err)
		}
	}()

	return url, nil
}

// Shutdown stops a started server.
func (m *Monitor) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}

	return m.server.Shutdown(ctx)
}

type httpError struct {
	code int
	err  error
}

func (e *httpError) Error() string {
	return e.err.Error()
}

func statusError(code int, format string, args ...any) error {
	return &httpError{code: code, err: fmt.Errorf(format, args...)}
}

// apiFunc adapts a handler that fails with an error. Errors without a status
// are internal errors.
type apiFunc func(w http.ResponseWriter, r *http.Request) error

func (f apiFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := f(w, r)
	if err == nil {
		return
	}

	code := http.StatusInternalServerError

	var he *httpError
	if errors.As(err, &he) {
		code = he.code
	}

	http.Error(w, err.Error(), code)
}

func writeJSON(w http.ResponseWriter, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding response")
	}

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(data)

	return err
}

func (m *Monitor) component(name string) (sim.Component, error) {
	c, found := m.components[name]
	if !found {
		return nil, statusError(http.StatusNotFound,
			"component %s not found", name)
	}

	return c, nil
}

type componentRsp struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Detail   string `json:"detail,omitempty"`
	NumPorts int    `json:"num_ports"`
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) error {
	rsp := make([]componentRsp, 0, len(m.order))
	for _, name := range m.order {
		e := datarecording.DescribeComponent(m.components[name])
		rsp = append(rsp, componentRsp{
			Name:     e.Name,
			Kind:     e.Kind,
			Detail:   e.Detail,
			NumPorts: e.NumPorts,
		})
	}

	return writeJSON(w, rsp)
}

func (m *Monitor) serializeComponent(w http.ResponseWriter, r *http.Request) error {
	c, err := m.component(mux.Vars(r)["name"])
	if err != nil {
		return err
	}

	depth := 1
	if d := r.URL.Query().Get("depth"); d != "" {
		depth, err = strconv.Atoi(d)
		if err != nil || depth < 0 {
			return statusError(http.StatusBadRequest, "invalid depth %q", d)
		}
	}

	return serialize(w, c, depth, nil)
}

func (m *Monitor) serializeField(w http.ResponseWriter, r *http.Request) error {
	vars := mux.Vars(r)

	c, err := m.component(vars["comp"])
	if err != nil {
		return err
	}

	field := vars["field"]
	if field == "" {
		return statusError(http.StatusBadRequest, "empty field name")
	}

	return serialize(w, c, 1, strings.Split(field, "."))
}

func serialize(
	w http.ResponseWriter,
	root any,
	depth int,
	entryPoint []string,
) error {
	s := goseth.NewSerializer()
	s.SetRoot(root)
	s.SetMaxDepth(depth)

	if entryPoint != nil {
		if err := s.SetEntryPoint(entryPoint); err != nil {
			return &httpError{code: http.StatusBadRequest, err: err}
		}
	}

	buf := new(bytes.Buffer)
	if err := s.Serialize(buf); err != nil {
		return errors.Wrap(err, "serializing component")
	}

	w.Header().Set("Content-Type", "application/json")
	_, err := buf.WriteTo(w)

	return err
}

type portRsp struct {
	Name       string `json:"name"`
	Connection string `json:"connection,omitempty"`
}

func (m *Monitor) listPorts(w http.ResponseWriter, r *http.Request) error {
	c, err := m.component(mux.Vars(r)["name"])
	if err != nil {
		return err
	}

	rsp := []portRsp{}
	for _, p := range c.Ports() {
		pr := portRsp{Name: p.Name()}
		if conn := p.Connection(); conn != nil {
			pr.Connection = conn.Name()
		}

		rsp = append(rsp, pr)
	}

	return writeJSON(w, rsp)
}

type linkRsp struct {
	Name      string `json:"name"`
	Requestor string `json:"requestor"`
	Responder string `json:"responder"`
}

func (m *Monitor) listLinks(w http.ResponseWriter, _ *http.Request) error {
	rsp := make([]linkRsp, 0, len(m.links))
	for _, l := range m.links {
		rsp = append(rsp, linkRsp{
			Name:      l.Name(),
			Requestor: l.Requestor.Name(),
			Responder: l.Responder.Name(),
		})
	}

	return writeJSON(w, rsp)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) reportResources(w http.ResponseWriter, _ *http.Request) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return errors.Wrap(err, "inspecting process")
	}

	cpu, err := proc.CPUPercent()
	if err != nil {
		return errors.Wrap(err, "reading cpu usage")
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		return errors.Wrap(err, "reading memory usage")
	}

	return writeJSON(w, resourceRsp{CPUPercent: cpu, MemorySize: memInfo.RSS})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) error {
	buf := new(bytes.Buffer)

	if err := pprof.StartCPUProfile(buf); err != nil {
		return &httpError{code: http.StatusConflict, err: err}
	}

	time.Sleep(m.profileDuration)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if err != nil {
		return errors.Wrap(err, "parsing profile")
	}

	return writeJSON(w, prof)
}
