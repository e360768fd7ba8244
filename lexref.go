/*
Package lexref detects and resolves references to legal-document structure
(articles, paragraphs, annexes, and the like) inside free-form multilingual
text drawn from European Union legislation and related corpora.

Consists of subpackages:
  - model: the Language Model — axes, values, connectors, and named entities
    a language recognises, and the compatibility rules between them;
  - celex: encodes and decodes CELEX identifiers from/to human citations;
  - token: the Span/RefTag/RefToken primitives produced by the tokeniser;
  - lexer: scans text against a Language Model into a sorted token list;
  - sequencer: partitions a token list into TokenSequences on word gaps;
  - internal/patterns: compiles the coordination engine's pattern mini-language;
  - coordtree: the arena-based Coordinate tree built by nesting;
  - coordination: the Coordination Engine and Nesting Engine;
  - standardize: maps Coordinates to canonical StdCoordinate targets and
    resolves cross-sentence back-references against a bounded cycle;
  - emit: turns standardised targets into href/title-bearing References;
  - markup: splices References into plain text as anchors;
  - reflect: the Reflector orchestrator tying all of the above together.

Typical usage is:

1. Build or load a model.LanguageModel for each language of interest.

2. Construct a reflect.Reflector from the bundled models.

3. Call Reflector.Call (or CallAll for a list of strings) on free text to
get back references, or Reflector.Markup to get spliced markup.
*/
package lexref
