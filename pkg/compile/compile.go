// Package compile turns an outline and a configuration into a LaTeX
// notebook. Output is written in a fixed order: lexer resolution, preamble,
// front matter, body, closing. The preamble declares one minted environment
// per lexer, so every lexer has to be known before anything is written.
package compile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"notebook/pkg/config"
	"notebook/pkg/highlight"
	"notebook/pkg/outline"

	"go.uber.org/zap"
)

// DefaultOutput is the file the notebook is written to.
const DefaultOutput = "out.tex"

// Compiler renders outlines for a single configuration.
type Compiler struct {
	cfg    *config.Config
	lexers *highlight.Cache
	logger *zap.Logger
}

// New returns a Compiler. The lexer cache lives as long as the Compiler.
func New(cfg *config.Config, resolver highlight.Resolver, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{
		cfg:    cfg,
		lexers: highlight.NewCache(resolver, logger),
		logger: logger,
	}
}

// CompileFile renders o and replaces the contents of path with the result.
// Nothing is written when compilation fails.
func (c *Compiler) CompileFile(path string, o outline.Outline) error {
	var buf bytes.Buffer
	if err := c.Compile(&buf, o); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		c.logger.Error("Failed to write output file", zap.String("file", path), zap.Error(err))
		return fmt.Errorf("failed to write output file: %w", err)
	}
	c.logger.Info("Wrote notebook", zap.String("file", path), zap.Int("bytes", buf.Len()))
	return nil
}

// Compile renders o to w.
func (c *Compiler) Compile(w io.Writer, o outline.Outline) error {
	start := time.Now()
	if !c.cfg.Compliant() {
		c.logger.Warn("By contest rules the notebook must be either a4 or letter paper",
			zap.String("paper", c.cfg.Page.Paper))
	}

	lexers, err := c.prescan(o)
	if err != nil {
		return fmt.Errorf("failed to resolve lexers: %w", err)
	}

	tw := newTexWriter(w)
	c.writePreamble(tw, lexers)
	c.writeFrontMatter(tw)
	if err := c.writeBody(tw, o); err != nil {
		return err
	}
	c.writeClosing(tw)
	if err := tw.flush(); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	c.logger.Info("Compiled notebook",
		zap.Int("entries", len(o)),
		zap.Int("lexers", len(lexers)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// prescan resolves the lexer of every file and returns the distinct lexers
// in use, sorted.
func (c *Compiler) prescan(o outline.Outline) ([]string, error) {
	used := map[string]bool{}
	for _, path := range o.Files() {
		lexer, err := c.lexers.Resolve(path)
		if err != nil {
			return nil, err
		}
		used[lexer] = true
	}
	lexers := make([]string, 0, len(used))
	for lexer := range used {
		lexers = append(lexers, lexer)
	}
	sort.Strings(lexers)
	return lexers, nil
}

func (c *Compiler) writePreamble(tw *texWriter, lexers []string) {
	doc, page, code := c.cfg.Document, c.cfg.Page, c.cfg.Code

	tw.line("%% this document was automatically generated by notebook")
	tw.line(`\documentclass[%s,oneside]{amsart}`, doc.FontSize)
	tw.line(`\usepackage[paper=%s,lmargin=%s,rmargin=%s,tmargin=%s,bmargin=%s,foot=0pt,landscape=%t]{geometry}`,
		page.Paper, page.LMargin, page.RMargin, page.TMargin, page.BMargin, page.Landscape)
	tw.line(`\usepackage{fancyhdr}`)
	tw.line(`\usepackage[utf8]{inputenc}`)
	if c.cfg.Multicol() {
		tw.line(`\usepackage{multicol}`)
	}
	tw.line(`\usepackage{minted}`)
	tw.line(`\usepackage{datetime}`)
	tw.line(`\usepackage[scaled]{berasans}`)
	tw.line(`\usepackage[scaled]{beramono}`)
	tw.line(`\renewcommand*\familydefault{\sfdefault}`)
	tw.line(`\usepackage[T1]{fontenc}`)
	tw.line(`\pagestyle{fancy}`)
	tw.line(`\lhead{%s - %s}`, doc.University, doc.Team)
	tw.line(`\rhead{Page: \thepage}`)
	tw.line(`\cfoot{}`)
	tw.line(`\renewcommand{\headrulewidth}{%s}`, page.HeadRuleWidth)
	tw.line(`\renewcommand{\footrulewidth}{%s}`, page.FootRuleWidth)
	tw.line(`\setlength{\headheight}{%s}`, page.HeadHeight)
	tw.line(`\setlength{\headsep}{%s}`, page.HeadSep)
	tw.line(`\setlength{\footskip}{%s}`, page.FootSkip)
	tw.line(`\setlength{\columnsep}{%s}`, page.ColumnSep)
	tw.line(`\title{%s}`, doc.Title)
	tw.line(`\author{%s}`, doc.Author)
	tw.line(`\date{\ddmmyyyydate{\today{}}}`)

	for _, lexer := range lexers {
		tw.line(`\newminted{%s}{tabsize=%d,linenos=%t,mathescape=%t,autogobble=%t,showspaces=%t,showtabs=%t,breaklines=%t,breakanywhere=%t,breakautoindent=%t,frame=%s,framerule=%s,style=%s,numbersep=%s,framesep=%s}`,
			lexer, code.TabSize, code.LineNos, code.MathEscape, code.AutoGobble, code.ShowSpaces, code.ShowTabs,
			code.BreakLines, code.BreakAnywhere, code.BreakAutoIndent, code.Frame, code.FrameRule, code.Style,
			code.NumberSep, code.FrameSep)
	}
}

func (c *Compiler) writeFrontMatter(tw *texWriter) {
	cols := c.cfg.Columns

	tw.line(`\begin{document}`)
	tw.line(`\thispagestyle{fancy}`)
	if cols.TOC > 1 {
		tw.line(`\begin{multicols*}{%d}`, cols.TOC)
	}
	tw.line(`\tableofcontents`)
	// With equal counts the ToC block stays open for the body.
	if cols.TOC > 1 && cols.TOC != cols.Body {
		tw.line(`\end{multicols*}`)
	}
	if cols.SeparateTOC {
		tw.line(`\newpage`)
	}
	if cols.Body > 1 && cols.TOC != cols.Body {
		tw.line(`\begin{multicols*}{%d}`, cols.Body)
	}
}

func (c *Compiler) writeBody(tw *texWriter, o outline.Outline) error {
	for _, e := range o {
		switch e.Kind {
		case outline.Section:
			tw.line(`\section{%s}`, Escape(e.Text))
		case outline.SubSection:
			tw.line(`\subsection{%s}`, Escape(e.Text))
		case outline.File:
			content, err := os.ReadFile(e.Text)
			if err != nil {
				c.logger.Error("Failed to read source file", zap.String("filePath", e.Text), zap.Error(err))
				return fmt.Errorf("error reading file %s: %w", e.Text, err)
			}
			lexer := c.lexers.Lookup(e.Text)
			tw.line(`\begin{%scode}`, lexer)
			tw.line("%s", ExpandTabs(string(content), c.cfg.Code.TabSize))
			tw.line(`\end{%scode}`, lexer)
			c.logger.Debug("Added listing", zap.String("filePath", e.Text), zap.String("lexer", lexer))
		}
	}
	return nil
}

func (c *Compiler) writeClosing(tw *texWriter) {
	if c.cfg.Columns.Body > 1 {
		tw.line(`\end{multicols*}`)
	}
	tw.line(`\end{document}`)
}

// ExpandTabs replaces every tab with width spaces.
func ExpandTabs(s string, width int) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", width))
}

// texWriter keeps the first write error so emitters can write unconditionally.
type texWriter struct {
	w   *bufio.Writer
	err error
}

func newTexWriter(w io.Writer) *texWriter {
	return &texWriter{w: bufio.NewWriter(w)}
}

func (tw *texWriter) line(format string, args ...interface{}) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format+"\n", args...)
}

func (tw *texWriter) flush() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.w.Flush()
}
