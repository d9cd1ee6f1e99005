package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"
	"go.uber.org/zap"

	"gleamls/internal/compiler"
	"gleamls/internal/config"
	"gleamls/internal/engine"
	"gleamls/internal/manifest"
	"gleamls/internal/vcs"
)

const lsName = "gleamls"

var lsVersion = "0.1.0"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the language server over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		commonlog.Configure(1, nil)

		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. Load the resolved dependency manifest
		m, err := manifest.Load(filepath.Join(cfg.Project.Root, cfg.Manifest))
		if err != nil {
			return fmt.Errorf("failed to load manifest: %w", err)
		}

		// 3. Seed the build with every source module on disk
		build := compiler.NewMemoryBuild()
		if err := seedSources(build, filepath.Join(cfg.Project.Root, cfg.Project.SrcDir)); err != nil {
			return fmt.Errorf("failed to read sources: %w", err)
		}

		// 4. Create the engine, downloading git dependencies first
		downloader := vcs.NewDownloader(filepath.Join(cfg.Project.Root, "build", "packages"), logger)
		eng, err := engine.New(cmd.Context(), cfg, m, build, downloader, logger)
		if err != nil {
			return err
		}

		// 5. Serve
		ls := newLanguageServer(eng, logger)
		server := glspserver.NewServer(ls.protocolHandler(), lsName, false)
		return server.RunStdio()
	},
}

// seedSources loads every discovered module's text into the build.
func seedSources(build *compiler.MemoryBuild, srcDir string) error {
	sources, err := compiler.DiscoverSources(srcDir)
	if err != nil {
		return err
	}
	for name, path := range sources {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		build.AddSource(name, path, string(raw))
	}
	return nil
}

// languageServer adapts the engine to the wire protocol. Every response
// envelope carries project warnings; they are published as diagnostics
// before the request's own result is returned.
type languageServer struct {
	engine *engine.Engine
	log    *zap.Logger
}

func newLanguageServer(eng *engine.Engine, log *zap.Logger) *languageServer {
	return &languageServer{engine: eng, log: log}
}

func (s *languageServer) protocolHandler() *protocol.Handler {
	handler := &protocol.Handler{
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.didOpen,
		TextDocumentDidChange:      s.didChange,
		TextDocumentHover:          s.hover,
		TextDocumentDefinition:     s.definition,
		TextDocumentCompletion:     s.completion,
		TextDocumentCodeAction:     s.codeAction,
		TextDocumentDocumentSymbol: s.documentSymbol,
	}
	handler.Initialize = func(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
		capabilities := handler.CreateServerCapabilities()
		capabilities.TextDocumentSync = protocol.TextDocumentSyncKindFull
		return protocol.InitializeResult{
			Capabilities: capabilities,
			ServerInfo: &protocol.InitializeResultServerInfo{
				Name:    lsName,
				Version: &lsVersion,
			},
		}, nil
	}
	return handler
}

func (s *languageServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	resp := s.engine.CompilePlease()
	s.publish(ctx, resp.Warnings)
	if resp.Err != nil {
		s.log.Warn("initial compilation failed", zap.Error(resp.Err))
	}
	return nil
}

func (s *languageServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *languageServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *languageServer) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.engine.UpdateSource(params.TextDocument.URI, params.TextDocument.Text)
	return s.recompile(ctx)
}

func (s *languageServer) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	for _, change := range params.ContentChanges {
		switch event := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			s.engine.UpdateSource(params.TextDocument.URI, event.Text)
		case protocol.TextDocumentContentChangeEvent:
			// Sync is full, so ranged events only appear from
			// misbehaving clients. Take the text as the whole document.
			s.engine.UpdateSource(params.TextDocument.URI, event.Text)
		}
	}
	return s.recompile(ctx)
}

func (s *languageServer) hover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	resp := s.engine.Hover(params)
	s.publish(ctx, resp.Warnings)
	return resp.Result, resp.Err
}

func (s *languageServer) definition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	resp := s.engine.GotoDefinition(params)
	s.publish(ctx, resp.Warnings)
	if resp.Result == nil {
		return nil, resp.Err
	}
	return resp.Result, resp.Err
}

func (s *languageServer) completion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	resp := s.engine.Completion(params)
	s.publish(ctx, resp.Warnings)
	if resp.Result == nil {
		return nil, resp.Err
	}
	return resp.Result, resp.Err
}

func (s *languageServer) codeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	resp := s.engine.CodeActions(params)
	s.publish(ctx, resp.Warnings)
	if resp.Result == nil {
		return nil, resp.Err
	}
	return resp.Result, resp.Err
}

func (s *languageServer) documentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	resp := s.engine.DocumentSymbols(params)
	s.publish(ctx, resp.Warnings)
	if resp.Result == nil {
		return nil, resp.Err
	}
	return resp.Result, resp.Err
}

func (s *languageServer) recompile(ctx *glsp.Context) error {
	resp := s.engine.CompilePlease()
	s.publish(ctx, resp.Warnings)
	if resp.Err != nil {
		s.log.Warn("compilation failed", zap.Error(resp.Err))
	}
	return nil
}

func (s *languageServer) publish(ctx *glsp.Context, warnings []compiler.Warning) {
	if len(warnings) == 0 {
		return
	}
	for _, params := range s.engine.Diagnostics(warnings) {
		ctx.Notify("textDocument/publishDiagnostics", &params)
	}
}
