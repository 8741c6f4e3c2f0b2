// =============================================================================
// Boleto Utils - Batch Processor
// =============================================================================
//
// Decodes every code of a CSV or XLSX file and writes a report with one row
// per input row.
//
// PIPELINE:
//   1. Read the input rows (CSV streamed, XLSX loaded whole)
//   2. Normalize the configured column and decode it, MaxConcurrency rows at
//      a time (errgroup with a limit)
//   3. Write the report (XLSX or CSV, by the extension of the file name)
//
// ERROR POLICY:
//   A row that does not decode is kept in the report with its error message
//   and logged at warn level. Only IO failures make Run return an error.
//
// =============================================================================

package lote

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/boleto-utils/internal/boleto"
	"github.com/ginjaninja78/boleto-utils/internal/config"
	"github.com/ginjaninja78/boleto-utils/internal/csvparser"
	"github.com/ginjaninja78/boleto-utils/internal/types"
	"github.com/ginjaninja78/boleto-utils/internal/xlsxparser"
	"github.com/ginjaninja78/boleto-utils/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Entrada is one code read from the input file.
type Entrada struct {
	// Linha is the 1-based row of the input file.
	Linha int
	// Codigo is the cell content as read, before normalization.
	Codigo string
}

// Resultado is the outcome of decoding one Entrada.
type Resultado struct {
	Entrada
	Boleto *boleto.Boleto
	Err    error
}

// OK reports whether the code decoded.
func (r Resultado) OK() bool {
	return r.Err == nil
}

// Stats summarizes a run.
type Stats struct {
	Total       int
	Validos     int
	Invalidos   int
	Cobranca    int
	Arrecadacao int
	Duration    time.Duration
}

// Report is what Run produced.
type Report struct {
	InputFile  string
	OutputFile string
	Resultados []Resultado
	Stats      Stats
}

// =============================================================================
// PROCESSOR
// =============================================================================

// Processor runs batch decodes. It is safe for concurrent use.
type Processor struct {
	decoder *boleto.Decoder
	cfg     config.LoteConfig
	logger  *zap.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProcessor creates a Processor. A nil decoder decodes without name
// resolution.
func NewProcessor(decoder *boleto.Decoder, cfg config.LoteConfig, opts ...Option) *Processor {
	if decoder == nil {
		decoder = boleto.NewDecoder(nil, nil)
	}
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}

	p := &Processor{
		decoder: decoder,
		cfg:     cfg,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run decodes inputPath and writes the report into the output directory.
func (p *Processor) Run(ctx context.Context, inputPath string) (*Report, error) {
	start := time.Now()

	p.logger.Info("batch started", zap.String("input", inputPath))

	entradas, err := p.Read(inputPath)
	if err != nil {
		return nil, err
	}

	resultados, err := p.Decode(ctx, entradas)
	if err != nil {
		return nil, err
	}

	if err := utils.EnsureDir(p.cfg.OutputDir); err != nil {
		return nil, err
	}
	name := utils.GenerateOutputFileName(p.cfg.FileNameFormat, map[string]string{
		"input": utils.BaseName(inputPath),
	})
	outputPath := filepath.Join(p.cfg.OutputDir, name)
	if utils.FileExists(outputPath) {
		p.logger.Warn("overwriting existing report", zap.String("output", outputPath))
	}

	if err := WriteReport(outputPath, resultados, p.cfg.CSVSettings); err != nil {
		return nil, err
	}

	report := &Report{
		InputFile:  inputPath,
		OutputFile: outputPath,
		Resultados: resultados,
		Stats:      summarize(resultados),
	}
	report.Stats.Duration = time.Since(start)

	p.logger.Info("batch finished",
		zap.String("output", outputPath),
		zap.Int("total", report.Stats.Total),
		zap.Int("invalidos", report.Stats.Invalidos),
		zap.Duration("duration", report.Stats.Duration))

	return report, nil
}

// =============================================================================
// READING
// =============================================================================

// Read loads the codes of the configured column. Empty rows are skipped.
func (p *Processor) Read(inputPath string) ([]Entrada, error) {
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".csv":
		return p.readCSV(inputPath)
	case ".xlsx":
		rows, err := xlsxparser.Parse(inputPath, p.cfg.Sheet, p.cfg.CSVSettings.HeaderRows)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
		}
		entradas := make([]Entrada, len(rows))
		for i, row := range rows {
			entradas[i] = p.entrada(row)
		}
		return entradas, nil
	default:
		return nil, fmt.Errorf("unsupported input file extension %q", filepath.Ext(inputPath))
	}
}

func (p *Processor) readCSV(inputPath string) ([]Entrada, error) {
	parser, err := csvparser.NewStreamingParser(inputPath, p.cfg.CSVSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	defer parser.Close()

	var entradas []Entrada
	for parser.Next() {
		entradas = append(entradas, p.entrada(parser.Row()))
	}
	if err := parser.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputPath, err)
	}
	return entradas, nil
}

func (p *Processor) entrada(row types.Row) Entrada {
	return Entrada{Linha: row.Number, Codigo: row.Cell(p.cfg.Column)}
}

// =============================================================================
// DECODING
// =============================================================================

// Decode decodes every entrada, at most MaxConcurrency at a time. The results
// keep the input order. It returns early only when ctx is done.
func (p *Processor) Decode(ctx context.Context, entradas []Entrada) ([]Resultado, error) {
	resultados := make([]Resultado, len(entradas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxConcurrency)

	for i := range entradas {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			resultados[i] = p.decodeOne(entradas[i])
			return nil
		})
	}
	// Workers never fail; a decode error belongs to its row.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch interrupted: %w", err)
	}
	return resultados, nil
}

func (p *Processor) decodeOne(e Entrada) Resultado {
	b, err := p.decoder.Parse(boleto.Normalize(e.Codigo))
	if err != nil {
		p.logger.Warn("row rejected",
			zap.Int("linha", e.Linha),
			zap.String("codigo", e.Codigo),
			zap.Error(err))
		return Resultado{Entrada: e, Err: err}
	}
	return Resultado{Entrada: e, Boleto: b}
}

func summarize(resultados []Resultado) Stats {
	s := Stats{Total: len(resultados)}
	for _, r := range resultados {
		if !r.OK() {
			s.Invalidos++
			continue
		}
		s.Validos++
		switch r.Boleto.Tipo {
		case types.TipoCobranca:
			s.Cobranca++
		case types.TipoArrecadacao:
			s.Arrecadacao++
		}
	}
	return s
}
