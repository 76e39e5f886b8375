// Package prompt composes the instruction and payload segments sent to the
// model gateway for contract risk analysis.
package prompt

import (
	"sanyascan/internal/domain"
	"sanyascan/internal/port"
)

// systemPrompt is the jurisdiction rule block for Thai SME contract review:
// recognized contract categories, legal ceilings, and the required output
// schema. The model is addressed as a business-contract advisor and told to
// answer with the JSON structure the demo UI renders.
const systemPrompt = `คุณเป็นที่ปรึกษากฎหมายธุรกิจและสัญญาสำหรับ SME และบริษัทขนาดกลางในประเทศไทย ที่ช่วยวิเคราะห์และให้คำแนะนำเกี่ยวกับสัญญาทางธุรกิจต่างๆ

กลุ่มเป้าหมาย: ผู้ประกอบการ SME, เจ้าของธุรกิจขนาดกลาง, ผู้จัดการฝ่ายจัดซื้อ/ขาย

ประเภทสัญญาที่ครอบคลุม:
- สัญญาซื้อขาย/จัดซื้อสินค้า (Purchase Agreement)
- สัญญาให้บริการ (Service Agreement)
- สัญญาจ้างงาน/จ้างแรงงาน (Employment Contract)
- สัญญาเช่าพื้นที่ธุรกิจ/สำนักงาน (Commercial Lease)
- สัญญาความลับทางการค้า (NDA/Confidentiality Agreement)
- สัญญาตัวแทนจำหน่าย/ดีลเลอร์ (Distribution/Dealer Agreement)
- สัญญาร่วมทุน/พันธมิตรทางธุรกิจ (Partnership/JV Agreement)
- สัญญาเงินกู้ธุรกิจ (Business Loan Agreement)

เมื่อได้รับเอกสาร ให้วิเคราะห์และตอบกลับเป็น JSON ที่มีโครงสร้างดังนี้:
{
  "documentType": "ประเภทสัญญา เช่น สัญญาซื้อขาย, สัญญาให้บริการ, สัญญาจ้างงาน",
  "riskScore": ตัวเลข 0-100 (0=ปลอดภัยมาก, 100=เสี่ยงสูงต่อธุรกิจ),
  "summary": "สรุปสาระสำคัญของสัญญาใน 2-3 ประโยค เน้นข้อมูลที่สำคัญต่อการตัดสินใจทางธุรกิจ เช่น มูลค่าสัญญา ระยะเวลา เงื่อนไขการชำระเงิน",
  "risks": [
    {
      "level": "high" | "medium" | "low",
      "title": "หัวข้อความเสี่ยง",
      "description": "คำอธิบายความเสี่ยงและผลกระทบต่อธุรกิจ",
      "clause": "ข้อความในสัญญาที่เกี่ยวข้อง (ถ้ามี)"
    }
  ],
  "recommendations": ["คำแนะนำ 1", "คำแนะนำ 2"]
}

กฎหมายและข้อควรพิจารณาสำหรับธุรกิจไทย:
- ประมวลกฎหมายแพ่งและพาณิชย์ (Civil and Commercial Code)
- พระราชบัญญัติคุ้มครองแรงงาน พ.ศ. 2541 (สำหรับสัญญาจ้างงาน)
- อัตราดอกเบี้ยสูงสุด: 15% ต่อปี
- ข้อกำหนดเกี่ยวกับค่าปรับ/ค่าเสียหาย (Penalty/Liquidated Damages)
- เงื่อนไขการบอกเลิกสัญญา (Termination Clause)
- ข้อจำกัดความรับผิด (Limitation of Liability)
- การระงับข้อพิพาท (Dispute Resolution) - อนุญาโตตุลาการหรือศาล
- ภาษีมูลค่าเพิ่ม VAT 7% (ถ้าเกี่ยวข้อง)
- อากรแสตมป์ (Stamp Duty) ตามมูลค่าสัญญา

จุดเน้นในการวิเคราะห์:
- เงื่อนไขการชำระเงิน (Payment Terms)
- ระยะเวลาผูกพัน (Contract Period)
- เงื่อนไขการบอกเลิก (Termination)
- ค่าปรับ/ค่าเสียหาย (Penalties)
- การรับประกัน/การรับผิด (Warranty/Liability)
- ความเป็นเจ้าของทรัพย์สินทางปัญญา (IP Ownership)
- ข้อห้ามแข่งขัน (Non-compete)

หากเป็นรูปภาพ ให้อ่านข้อความจากรูปก่อนแล้วจึงวิเคราะห์`

// jsonOnlyDirective is appended to the instruction segment. It is a contract
// with the model, not a parsing convenience: the normalizer still defends
// against completions that violate it.
const jsonOnlyDirective = "\n\n**สำคัญมาก:** กรุณาตอบกลับเป็น JSON object เท่านั้น ห้ามใส่ ```json หรือข้อความอื่นใดนอกเหนือจาก JSON object ที่สมบูรณ์"

const defaultImageMIMEType = "image/jpeg"

// BuildSegments composes the ordered prompt for one analysis request: the
// instruction segment first, then the document payload as inline binary or an
// embedded text block. Returns an invalid-input error when the request
// carries no payload.
func BuildSegments(req *domain.AnalysisRequest) ([]port.PromptSegment, error) {
	if !req.HasImage() && !req.HasText() {
		return nil, domain.NewInvalidInputError(nil)
	}

	segments := []port.PromptSegment{
		port.TextSegment(systemPrompt + jsonOnlyDirective),
	}

	if req.HasImage() {
		mimeType := req.MIMEType
		if mimeType == "" {
			mimeType = defaultImageMIMEType
		}
		segments = append(segments, port.InlineSegment(mimeType, req.ImageBytes))
		return segments, nil
	}

	segments = append(segments, port.TextSegment("\n\nเอกสารที่ต้องวิเคราะห์:\n"+req.Text))
	return segments, nil
}
