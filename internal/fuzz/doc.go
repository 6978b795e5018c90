// Package fuzztests houses Go fuzz harnesses for the stderr pipeline
// (scan -> aggregate -> project). The goal is to smoke test totality: no
// input may panic, and the pipeline invariants must hold for every input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
