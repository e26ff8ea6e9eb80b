// debug_disasm_8080.go - 8080 mnemonic table for optional execution tracing

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

// opMnemonics8080 names each of the 256 opcode slots, indexed by the raw
// opcode byte. Unlike the teacher's Z80/6502 disassemblers, this table
// carries no operand-size/addressing-mode metadata: it only serves
// PerfEnabled execution tracing (one name per fetched opcode), not a
// standalone monitor/debugger surface. The undefined slots, which execute
// as NOP, are named "NOP (invalid)" so the trace marks them.
var opMnemonics8080 = [256]string{
	0x00: "NOP", 0x01: "LXI B", 0x02: "STAX B", 0x03: "INX B",
	0x04: "INR B", 0x05: "DCR B", 0x06: "MVI B", 0x07: "RLC",
	0x08: "NOP (invalid)", 0x09: "DAD B", 0x0a: "LDAX B", 0x0b: "DCX B",
	0x0c: "INR C", 0x0d: "DCR C", 0x0e: "MVI C", 0x0f: "RRC",

	0x10: "NOP (invalid)", 0x11: "LXI D", 0x12: "STAX D", 0x13: "INX D",
	0x14: "INR D", 0x15: "DCR D", 0x16: "MVI D", 0x17: "RAL",
	0x18: "NOP (invalid)", 0x19: "DAD D", 0x1a: "LDAX D", 0x1b: "DCX D",
	0x1c: "INR E", 0x1d: "DCR E", 0x1e: "MVI E", 0x1f: "RAR",

	0x20: "NOP (invalid)", 0x21: "LXI H", 0x22: "SHLD", 0x23: "INX H",
	0x24: "INR H", 0x25: "DCR H", 0x26: "MVI H", 0x27: "DAA",
	0x28: "NOP (invalid)", 0x29: "DAD H", 0x2a: "LHLD", 0x2b: "DCX H",
	0x2c: "INR L", 0x2d: "DCR L", 0x2e: "MVI L", 0x2f: "CMA",

	0x30: "NOP (invalid)", 0x31: "LXI SP", 0x32: "STA", 0x33: "INX SP",
	0x34: "INR M", 0x35: "DCR M", 0x36: "MVI M", 0x37: "STC",
	0x38: "NOP (invalid)", 0x39: "DAD SP", 0x3a: "LDA", 0x3b: "DCX SP",
	0x3c: "INR A", 0x3d: "DCR A", 0x3e: "MVI A", 0x3f: "CMC",

	// 0x40-0x7f, including 0x76 (MOV M,M), are MOV dst,src, filled in by
	// init() below rather than spelled out here: 64 near-identical
	// entries following the same 01DDDSSS encoding the dispatch table
	// uses, with no carve-out for dst==src==M.

	0x80: "ADD B", 0x81: "ADD C", 0x82: "ADD D", 0x83: "ADD E",
	0x84: "ADD H", 0x85: "ADD L", 0x86: "ADD M", 0x87: "ADD A",
	0x88: "ADC B", 0x89: "ADC C", 0x8a: "ADC D", 0x8b: "ADC E",
	0x8c: "ADC H", 0x8d: "ADC L", 0x8e: "ADC M", 0x8f: "ADC A",

	0x90: "SUB B", 0x91: "SUB C", 0x92: "SUB D", 0x93: "SUB E",
	0x94: "SUB H", 0x95: "SUB L", 0x96: "SUB M", 0x97: "SUB A",
	0x98: "SBB B", 0x99: "SBB C", 0x9a: "SBB D", 0x9b: "SBB E",
	0x9c: "SBB H", 0x9d: "SBB L", 0x9e: "SBB M", 0x9f: "SBB A",

	0xa0: "ANA B", 0xa1: "ANA C", 0xa2: "ANA D", 0xa3: "ANA E",
	0xa4: "ANA H", 0xa5: "ANA L", 0xa6: "ANA M", 0xa7: "ANA A",
	0xa8: "XRA B", 0xa9: "XRA C", 0xaa: "XRA D", 0xab: "XRA E",
	0xac: "XRA H", 0xad: "XRA L", 0xae: "XRA M", 0xaf: "XRA A",

	0xb0: "ORA B", 0xb1: "ORA C", 0xb2: "ORA D", 0xb3: "ORA E",
	0xb4: "ORA H", 0xb5: "ORA L", 0xb6: "ORA M", 0xb7: "ORA A",
	0xb8: "CMP B", 0xb9: "CMP C", 0xba: "CMP D", 0xbb: "CMP E",
	0xbc: "CMP H", 0xbd: "CMP L", 0xbe: "CMP M", 0xbf: "CMP A",

	0xc0: "RNZ", 0xc1: "POP B", 0xc2: "JNZ", 0xc3: "JMP",
	0xc4: "CNZ", 0xc5: "PUSH B", 0xc6: "ADI", 0xc7: "RST 0",
	0xc8: "RZ", 0xc9: "RET", 0xca: "JZ", 0xcb: "NOP (invalid)",
	0xcc: "CZ", 0xcd: "CALL", 0xce: "ACI", 0xcf: "RST 1",

	0xd0: "RNC", 0xd1: "POP D", 0xd2: "JNC", 0xd3: "OUT",
	0xd4: "CNC", 0xd5: "PUSH D", 0xd6: "SUI", 0xd7: "RST 2",
	0xd8: "RC", 0xd9: "NOP (invalid)", 0xda: "JC", 0xdb: "IN",
	0xdc: "CC", 0xdd: "NOP (invalid)", 0xde: "SBI", 0xdf: "RST 3",

	0xe0: "RPO", 0xe1: "POP H", 0xe2: "JPO", 0xe3: "XTHL",
	0xe4: "CPO", 0xe5: "PUSH H", 0xe6: "ANI", 0xe7: "RST 4",
	0xe8: "RPE", 0xe9: "PCHL", 0xea: "JPE", 0xeb: "XCHG",
	0xec: "CPE", 0xed: "NOP (invalid)", 0xee: "XRI", 0xef: "RST 5",

	0xf0: "RP", 0xf1: "POP PSW", 0xf2: "JP", 0xf3: "DI",
	0xf4: "CP", 0xf5: "PUSH PSW", 0xf6: "ORI", 0xf7: "RST 6",
	0xf8: "RM", 0xf9: "SPHL", 0xfa: "JM", 0xfb: "EI",
	0xfc: "CM", 0xfd: "NOP (invalid)", 0xfe: "CPI", 0xff: "RST 7",
}

var movOperandNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

func init() {
	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			opcode := byte(0x40 | dst<<3 | src)
			opMnemonics8080[opcode] = "MOV " + movOperandNames[dst] + "," + movOperandNames[src]
		}
	}
}

// mnemonicFor returns the mnemonic name for a fetched opcode byte, or
// "???" for any slot the table above leaves unnamed (there shouldn't be
// any left, since every one of the 256 slots is bound in initOps()).
func mnemonicFor(opcode byte) string {
	if name := opMnemonics8080[opcode]; name != "" {
		return name
	}
	return "???"
}
