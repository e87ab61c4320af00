// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/ax16/axio"
	"github.com/ezrec/ax16/cpu"
	"github.com/ezrec/ax16/emulator"
)

func main() {
	var compile string
	var memfile string
	var output string
	var save bool
	var step bool
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.StringVar(&memfile, "m", "", ".bin memory image to load")
	flag.StringVar(&output, "o", "-", "Image output for -s")
	flag.BoolVar(&save, "s", false, "Save compiled image, do not execute")
	flag.BoolVar(&step, "t", false, "Single-step, printing state after each cycle")
	flag.IntVar(&limit, "n", 0, "Cycle limit (0 for no limit)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if save {
		ouf := os.Stdout
		if output != "-" {
			var err error
			ouf, err = os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer ouf.Close()
		}
		if err := axio.Save(ouf, emu.Program); err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	if err := emu.Reset(); err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	// A raw memory image overrides the compiled program.
	if len(memfile) != 0 {
		inf, err := os.Open(memfile)
		if err != nil {
			log.Fatalf("%v: %v", memfile, err)
		}
		defer inf.Close()

		image, err := axio.Load(inf)
		if err != nil {
			log.Fatalf("%v: %v", memfile, err)
		}
		if err = emu.Cpu.Mem.Load(image); err != nil {
			log.Fatalf("%v: %v", memfile, err)
		}
	}

	if step {
		stdin := bufio.NewReader(os.Stdin)
		for {
			_, done, err := emu.Step()
			if errors.Is(err, cpu.ErrExtOpcode) {
				log.Printf("%v", err)
				err = nil
			}
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(emu.Cpu.String())
			if done {
				break
			}
			if _, err = stdin.ReadString('\n'); err != nil {
				break
			}
		}
	} else {
		if _, err := emu.Run(limit); err != nil {
			log.Fatal(err)
		}
		fmt.Print(emu.Cpu.String())
	}

	log.Printf("halted after %d cycles", emu.Cpu.Cycles)
}
