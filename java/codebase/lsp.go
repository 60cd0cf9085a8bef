package codebase

import (
	"archive/zip"
	"encoding/json"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/avhelper/autovalue"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "avhelper"

var (
	CommandGenerateBuilder = CommandName(autovalue.ModeBuilder)
	CommandGenerateCreate  = CommandName(autovalue.ModeCreate)
)

// CommandName returns the workspace command running mode, such as
// avhelper.generateBuilder.
func CommandName(mode autovalue.Mode) string {
	return lsName + ".generate" + strcase.ToCamel(mode.String())
}

var commandModes = map[string]autovalue.Mode{
	CommandGenerateBuilder: autovalue.ModeBuilder,
	CommandGenerateCreate:  autovalue.ModeCreate,
}

var actionTitles = map[autovalue.Mode]string{
	autovalue.ModeBuilder: "Generate AutoValue builder",
	autovalue.ModeCreate:  "Generate AutoValue create()",
}

type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string
	config   *autovalue.Config

	mu   sync.Mutex
	open map[string]bool
}

// NewLSPServer returns a server generating code with cfg. Clients may
// override cfg through their initialization options.
func NewLSPServer(version string, cfg *autovalue.Config) *LSPServer {
	ls := &LSPServer{
		version: version,
		config:  cfg,
		open:    make(map[string]bool),
	}

	ls.handler = protocol.Handler{
		Initialize:              ls.initialize,
		Initialized:             ls.initialized,
		Shutdown:                ls.shutdown,
		SetTrace:                ls.setTrace,
		TextDocumentDidOpen:     ls.textDocumentDidOpen,
		TextDocumentDidChange:   ls.textDocumentDidChange,
		TextDocumentDidClose:    ls.textDocumentDidClose,
		TextDocumentDidSave:     ls.textDocumentDidSave,
		TextDocumentCodeAction:  ls.textDocumentCodeAction,
		WorkspaceExecuteCommand: ls.workspaceExecuteCommand,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.codebase = New(rootDir)

	if params.InitializationOptions != nil {
		cfg, err := mergeConfig(ls.config, params.InitializationOptions)
		if err != nil {
			log.Warningf("ignoring initialization options: %s", err)
		} else {
			ls.config = cfg
		}
	}

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CodeActionProvider = &protocol.CodeActionOptions{
		CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindSource},
	}
	capabilities.ExecuteCommandProvider = &protocol.ExecuteCommandOptions{
		Commands: []string{CommandGenerateBuilder, CommandGenerateCreate},
	}

	log.Infof("initialized in %s", rootDir)

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

// mergeConfig applies the JSON encoded options on top of a copy of base.
func mergeConfig(base *autovalue.Config, options any) (*autovalue.Config, error) {
	data, err := json.Marshal(options)
	if err != nil {
		return nil, errors.Wrap(err, "encode initialization options")
	}
	cfg := base.Clone()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decode initialization options")
	}
	return cfg, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(); err != nil {
		log.Warningf("%s", err)
	}
	if javaSrc := os.Getenv("JAVA_SRC"); javaSrc != "" {
		ls.scanJavaSrc(javaSrc)
	}
	log.Infof("indexed %d classes", ls.codebase.ClassCount())

	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.Skip = ls.isOpen
	ls.watcher.Start()
	return nil
}

// scanJavaSrc indexes library sources, usually the src.zip of a JDK, so
// that supertypes declared outside the workspace can be followed.
func (ls *LSPServer) scanJavaSrc(path string) {
	info, err := os.Stat(path)
	if err != nil {
		log.Warningf("JAVA_SRC: %s", err)
		return
	}
	if info.IsDir() {
		if err := ls.codebase.ScanDir(path); err != nil {
			log.Warningf("JAVA_SRC: %s", err)
		}
		return
	}
	switch filepath.Ext(path) {
	case ".zip", ".jar":
		ls.scanZipOrJar(path)
	case ".java":
		ls.codebase.ScanFile(path)
	}
}

func (ls *LSPServer) scanZipOrJar(zipPath string) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		log.Warningf("JAVA_SRC: %s", err)
		return
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() || filepath.Ext(f.Name) != ".java" {
			continue
		}
		ls.scanZipEntry(f)
	}
}

func (ls *LSPServer) scanZipEntry(f *zip.File) {
	rc, err := f.Open()
	if err != nil {
		return
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return
	}

	virtualPath := "jdk:" + f.Name
	ls.codebase.UpdateFile(virtualPath, content)
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) isOpen(path string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.open[path]
}

func (ls *LSPServer) setOpen(path string, open bool) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if open {
		ls.open[path] = true
	} else {
		delete(ls.open, path)
	}
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.setOpen(path, true)
	ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.codebase.UpdateFile(path, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.setOpen(path, false)
	if _, err := os.Stat(path); err == nil {
		ls.codebase.ScanFile(path)
	} else {
		ls.codebase.RemoveFile(path)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else {
		ls.codebase.ScanFile(path)
	}
	return nil
}

func (ls *LSPServer) textDocumentCodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	if !wantsSource(params.Context.Only) {
		return nil, nil
	}
	actions := ls.codeActions(params.TextDocument.URI, params.Range.Start)
	if len(actions) == 0 {
		return nil, nil
	}
	return actions, nil
}

// wantsSource reports whether a client asking for the given kinds accepts
// source actions.
func wantsSource(only []protocol.CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, kind := range only {
		if kind == protocol.CodeActionKindSource {
			return true
		}
	}
	return false
}

// codeActions offers one action per generation mode that would change the
// document at pos.
func (ls *LSPServer) codeActions(uri protocol.DocumentUri, pos protocol.Position) []protocol.CodeAction {
	var actions []protocol.CodeAction
	for _, mode := range []autovalue.Mode{autovalue.ModeBuilder, autovalue.ModeCreate} {
		workspaceEdit, err := ls.generate(uri, pos, mode)
		if err != nil {
			if !errors.Is(err, autovalue.ErrNotApplicable) {
				log.Debugf("%s", err)
			}
			return nil
		}
		if workspaceEdit == nil {
			continue
		}
		kind := protocol.CodeActionKindSource
		actions = append(actions, protocol.CodeAction{
			Title: actionTitles[mode],
			Kind:  &kind,
			Edit:  workspaceEdit,
		})
	}
	return actions
}

// generate returns the edit for mode at pos, or nil when the document is
// already up to date.
func (ls *LSPServer) generate(uri protocol.DocumentUri, pos protocol.Position, mode autovalue.Mode) (*protocol.WorkspaceEdit, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "bad uri %s", uri)
	}
	info := ls.codebase.GetFile(path)
	if info == nil {
		return nil, errors.Wrapf(autovalue.ErrNotApplicable, "%s is not open", path)
	}
	if info.File == nil {
		return nil, errors.Wrapf(info.ParseErr, "%s", path)
	}

	target, err := autovalue.Find(info.File, Offset(info.Content, pos), ls.codebase, ls.config)
	if err != nil {
		return nil, err
	}
	result, err := target.Generate(mode, ls.config)
	if err != nil {
		return nil, err
	}
	if !result.Changed() {
		return nil, nil
	}
	return &protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			uri: TextEdits(info.Content, result.Edits),
		},
	}, nil
}

func (ls *LSPServer) workspaceExecuteCommand(ctx *glsp.Context, params *protocol.ExecuteCommandParams) (any, error) {
	mode, ok := commandModes[params.Command]
	if !ok {
		return nil, errors.Errorf("unknown command %s", params.Command)
	}
	uri, pos, err := commandArguments(params.Arguments)
	if err != nil {
		return nil, errors.Wrap(err, params.Command)
	}

	workspaceEdit, err := ls.generate(uri, pos, mode)
	if err != nil {
		if errors.Is(err, autovalue.ErrNotApplicable) {
			log.Infof("%s: %s", params.Command, err)
			return nil, nil
		}
		return nil, err
	}
	if workspaceEdit == nil {
		return nil, nil
	}

	label := actionTitles[mode]
	var response protocol.ApplyWorkspaceEditResponse
	ctx.Call(protocol.ServerWorkspaceApplyEdit, protocol.ApplyWorkspaceEditParams{
		Label: &label,
		Edit:  *workspaceEdit,
	}, &response)
	if !response.Applied {
		reason := "unknown reason"
		if response.FailureReason != nil {
			reason = *response.FailureReason
		}
		log.Warningf("%s: client rejected edit: %s", params.Command, reason)
	}
	return nil, nil
}

// commandArguments decodes the document URI, 0-based line and UTF-16
// character that both generate commands take.
func commandArguments(args []any) (protocol.DocumentUri, protocol.Position, error) {
	if len(args) != 3 {
		return "", protocol.Position{}, errors.Errorf("expected uri, line and character, got %d arguments", len(args))
	}
	uri, ok := args[0].(string)
	if !ok {
		return "", protocol.Position{}, errors.Errorf("uri must be a string, got %T", args[0])
	}
	line, err := uinteger(args[1])
	if err != nil {
		return "", protocol.Position{}, errors.Wrap(err, "line")
	}
	character, err := uinteger(args[2])
	if err != nil {
		return "", protocol.Position{}, errors.Wrap(err, "character")
	}
	return uri, protocol.Position{Line: line, Character: character}, nil
}

func uinteger(v any) (protocol.UInteger, error) {
	switch n := v.(type) {
	case float64:
		if n >= 0 {
			return protocol.UInteger(n), nil
		}
	case int:
		if n >= 0 {
			return protocol.UInteger(n), nil
		}
	case protocol.UInteger:
		return n, nil
	}
	return 0, errors.Errorf("expected a non-negative number, got %v", v)
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
