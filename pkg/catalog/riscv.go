// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package catalog

// Built-in RISC-V instruction groups.
// Identifiers follow the NAME##RISCV convention understood by generation backends.

const defaultWeight = 10

func riscv(names ...string) []string {
	res := make([]string, len(names))
	for i, name := range names {
		res[i] = name + "##RISCV"
	}
	return res
}

var (
	rv32iALU = riscv(
		"ADD", "ADDI", "SUB", "AND", "ANDI", "OR", "ORI", "XOR", "XORI",
		"SLL", "SLLI#RV32I#", "SRL", "SRLI#RV32I#", "SRA", "SRAI#RV32I#",
		"SLT", "SLTI", "SLTU", "SLTIU", "LUI", "AUIPC",
	)
	rv64iALU = riscv(
		"ADDIW", "ADDW", "SUBW", "SLLIW", "SLLW", "SRLIW", "SRLW", "SRAIW", "SRAW",
		"SLLI#RV64I#", "SRLI#RV64I#", "SRAI#RV64I#",
	)
	rv32iLdSt = riscv("LB", "LBU", "LH", "LHU", "LW", "SB", "SH", "SW")
	rv64iLdSt = riscv("LD", "LWU", "SD")
	branchJump = riscv(
		"BEQ", "BNE", "BLT", "BLTU", "BGE", "BGEU", "JAL", "JALR",
	)
	rvM = riscv(
		"MUL", "MULH", "MULHSU", "MULHU", "DIV", "DIVU", "REM", "REMU",
	)
	rv64M = riscv("MULW", "DIVW", "DIVUW", "REMW", "REMUW")
	rvA = riscv(
		"LR.W", "SC.W", "AMOSWAP.W", "AMOADD.W", "AMOXOR.W", "AMOAND.W",
		"AMOOR.W", "AMOMIN.W", "AMOMAX.W", "AMOMINU.W", "AMOMAXU.W",
	)
	rv64A = riscv(
		"LR.D", "SC.D", "AMOSWAP.D", "AMOADD.D", "AMOXOR.D", "AMOAND.D",
		"AMOOR.D", "AMOMIN.D", "AMOMAX.D", "AMOMINU.D", "AMOMAXU.D",
	)
	rv32F = riscv(
		"FLW", "FSW", "FMADD.S", "FMSUB.S", "FNMSUB.S", "FNMADD.S",
		"FADD.S", "FSUB.S", "FMUL.S", "FDIV.S", "FSQRT.S",
		"FSGNJ.S", "FSGNJN.S", "FSGNJX.S", "FMIN.S", "FMAX.S",
		"FCVT.W.S", "FCVT.WU.S", "FMV.X.W", "FEQ.S", "FLT.S", "FLE.S",
		"FCLASS.S", "FCVT.S.W", "FCVT.S.WU", "FMV.W.X",
	)
	rv64F = riscv("FCVT.L.S", "FCVT.LU.S", "FCVT.S.L", "FCVT.S.LU")
	rv32D = riscv(
		"FLD", "FSD", "FMADD.D", "FMSUB.D", "FNMSUB.D", "FNMADD.D",
		"FADD.D", "FSUB.D", "FMUL.D", "FDIV.D", "FSQRT.D",
		"FSGNJ.D", "FSGNJN.D", "FSGNJX.D", "FMIN.D", "FMAX.D",
		"FCVT.S.D", "FCVT.D.S", "FEQ.D", "FLT.D", "FLE.D", "FCLASS.D",
		"FCVT.W.D", "FCVT.WU.D", "FCVT.D.W", "FCVT.D.WU",
	)
	rv64D = riscv(
		"FCVT.L.D", "FCVT.LU.D", "FMV.X.D", "FCVT.D.L", "FCVT.D.LU", "FMV.D.X",
	)
)

func concat(lists ...[]string) []string {
	var res []string
	for _, list := range lists {
		res = append(res, list...)
	}
	return res
}

func riscvGroups() []*Group {
	g32I := Uniform("RV32I", defaultWeight, concat(rv32iALU, rv32iLdSt, branchJump)...)
	g64I := Uniform("RV64I", defaultWeight, concat(rv32iALU, rv64iALU, rv32iLdSt, rv64iLdSt, branchJump)...)
	g32F := Uniform("RV32F", defaultWeight, rv32F...)
	g64F := Uniform("RV64F", defaultWeight, concat(rv32F, rv64F)...)
	g32D := Uniform("RV32D", defaultWeight, rv32D...)
	g64D := Uniform("RV64D", defaultWeight, concat(rv32D, rv64D)...)
	gM := Uniform("RV_M", defaultWeight, concat(rvM, rv64M)...)
	gA := Uniform("RV_A", defaultWeight, concat(rvA, rv64A)...)
	return []*Group{
		g32I, g64I, g32F, g64F, g32D, g64D, gM, gA,
		Uniform("BranchJump", defaultWeight, branchJump...),
		Uniform("LDST_All", defaultWeight, concat(rv32iLdSt, rv64iLdSt, riscv("FLW", "FSW", "FLD", "FSD"))...),
		Uniform("ALU_Int_All", defaultWeight, concat(rv32iALU, rv64iALU, rvM, rv64M)...),
		// Float loads/stores (first two entries) are in LDST_All.
		Uniform("ALU_Float_All", defaultWeight, concat(rv32F[2:], rv64F, rv32D[2:], rv64D)...),
		Merge("RV_G", g64I, gM, gA, g64F, g64D),
	}
}
