package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"go.uber.org/zap"
)

// LineageService reconstructs the causal chain around one identifier.
type LineageService struct {
	orders        port.OrderRepository
	batches       port.BatchRepository
	runs          port.SweepRepository
	notifications port.NotificationRepository
	transfers     port.TransferRepository
	logger        *zap.Logger
}

func NewLineageService(orders port.OrderRepository, batches port.BatchRepository, runs port.SweepRepository,
	notifications port.NotificationRepository, transfers port.TransferRepository, logger *zap.Logger) *LineageService {
	return &LineageService{
		orders:        orders,
		batches:       batches,
		runs:          runs,
		notifications: notifications,
		transfers:     transfers,
		logger:        logger,
	}
}

// notificationRefs are the payload fields that link a notification to other stages.
type notificationRefs struct {
	SweepBatchID string `json:"sweep_batch_id"`
	PaidBatchID  string `json:"paid_batch_id"`
	Orders       []struct {
		OrderID string `json:"order_id"`
	} `json:"orders"`
	OrderIDs []string `json:"order_ids"`
}

func parseRefs(n *domain.Notification) notificationRefs {
	var refs notificationRefs
	_ = json.Unmarshal([]byte(n.Payload), &refs)
	return refs
}

func (r notificationRefs) orderIDs() []string {
	ids := slices.Clone(r.OrderIDs)
	for _, o := range r.Orders {
		ids = append(ids, o.OrderID)
	}
	return ids
}

// trace holds the state of one Trace call.
type trace struct {
	s       *LineageService
	lineage *domain.Lineage

	nodes         map[string]bool
	orders        map[string]*domain.Order
	batches       map[string]*domain.PrepareBatch
	runs          map[string]*domain.SweepRun
	notifications map[string]*domain.Notification
	paidBatches   map[string]bool
}

func (s *LineageService) Trace(ctx context.Context, id string, kind domain.LineageKind) (*domain.Lineage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.ErrLineageIDRequired
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownLineageType, kind)
	}

	t := &trace{
		s:             s,
		lineage:       &domain.Lineage{AnchorID: id, AnchorType: kind, Chain: []domain.LineageNode{}},
		nodes:         make(map[string]bool),
		orders:        make(map[string]*domain.Order),
		batches:       make(map[string]*domain.PrepareBatch),
		runs:          make(map[string]*domain.SweepRun),
		notifications: make(map[string]*domain.Notification),
		paidBatches:   make(map[string]bool),
	}

	found, err := t.resolveAnchor(ctx, id, kind)
	if err != nil {
		s.logger.Error("Resolve lineage anchor", zap.String("id", id), zap.String("kind", string(kind)), zap.Error(err))
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrDataNotFound, kind, id)
	}

	t.expand(ctx)

	slices.SortStableFunc(t.lineage.Chain, func(a, b domain.LineageNode) int {
		if d := stageIndex(a.Stage) - stageIndex(b.Stage); d != 0 {
			return d
		}
		return strings.Compare(a.ID, b.ID)
	})
	return t.lineage, nil
}

func stageIndex(stage domain.LineageStage) int {
	return slices.Index(domain.StageSequence, stage)
}

// resolveAnchor loads the stage the identifier names. Only a failure here ends the trace.
func (t *trace) resolveAnchor(ctx context.Context, id string, kind domain.LineageKind) (bool, error) {
	switch kind {
	case domain.LineageOrder:
		o, err := t.s.orders.GetOrder(ctx, id)
		if errors.Is(err, domain.ErrDataNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		t.addOrders(o)
		return true, nil

	case domain.LineageBasket:
		found, err := t.findOrders(ctx, domain.OrderFilter{BasketID: id})
		if err != nil || found {
			return found, err
		}
		staged, _, err := t.s.batches.ListPreparedOrders(ctx, domain.PreparedOrderFilter{BasketID: id})
		if err != nil {
			return false, err
		}
		for _, p := range staged {
			t.addPrepared(p)
			t.loadBatch(ctx, p.BatchID)
		}
		return len(staged) > 0, nil

	case domain.LineagePrepareBatch:
		b, err := t.s.batches.GetBatch(ctx, id)
		if errors.Is(err, domain.ErrDataNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		t.addBatch(b)
		found, err := t.findOrders(ctx, domain.OrderFilter{BatchID: id})
		if err != nil {
			return false, err
		}
		if !found {
			staged, _, err := t.s.batches.ListPreparedOrders(ctx, domain.PreparedOrderFilter{BatchID: id})
			if err != nil {
				return false, err
			}
			for _, p := range staged {
				t.addPrepared(p)
			}
		}
		return true, nil

	case domain.LineageSweepBatch:
		run, err := t.s.runs.GetSweepRun(ctx, id)
		if errors.Is(err, domain.ErrDataNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		t.addRun(run)
		list, err := t.s.notifications.FindNotifications(ctx, domain.NotificationFilter{SweepBatchID: id})
		if err != nil {
			return false, err
		}
		return true, t.ordersFromNotifications(ctx, list)

	case domain.LineageBrokerReference:
		found, err := t.findOrders(ctx, domain.OrderFilter{BrokerReference: id})
		if err != nil || found {
			return found, err
		}
		// A batch-level reference may only exist in the broker's answer.
		list, err := t.s.notifications.FindNotifications(ctx, domain.NotificationFilter{ResponseText: id})
		if err != nil {
			return false, err
		}
		if len(list) == 0 {
			return false, nil
		}
		return true, t.ordersFromNotifications(ctx, list)

	case domain.LineageExecReference:
		return t.findOrders(ctx, domain.OrderFilter{ExecReference: id})

	case domain.LineageACHBatch:
		found, err := t.findOrders(ctx, domain.OrderFilter{PaidBatchID: id})
		if err != nil || found {
			return found, err
		}
		transfers, err := t.s.transfers.FindTransfers(ctx, domain.TransferFilter{PaidBatchID: id})
		if err != nil {
			return false, err
		}
		if len(transfers) == 0 {
			return false, nil
		}
		t.paidBatches[id] = true
		return true, nil
	}
	return false, nil
}

func (t *trace) findOrders(ctx context.Context, filter domain.OrderFilter) (bool, error) {
	list, err := t.s.orders.ListOrders(ctx, filter)
	if err != nil {
		return false, err
	}
	t.addOrders(list...)
	return len(list) > 0, nil
}

func (t *trace) ordersFromNotifications(ctx context.Context, list []*domain.Notification) error {
	var ids []string
	for _, n := range list {
		t.addNotification(n)
		ids = append(ids, parseRefs(n).orderIDs()...)
	}
	if len(ids) == 0 {
		return nil
	}
	_, err := t.findOrders(ctx, domain.OrderFilter{IDs: ids})
	return err
}

// expand walks from the anchor to every related stage. Failed hops become gaps.
func (t *trace) expand(ctx context.Context) {
	for _, run := range t.runs {
		t.loadBatch(ctx, run.BatchID)
	}

	for _, o := range sortedOrders(t.orders) {
		if o.BatchID != "" {
			t.loadBatch(ctx, o.BatchID)
			t.loadPrepared(ctx, o)
		}
		t.loadOrderNotifications(ctx, o)
		if o.PaidBatchID != "" {
			t.paidBatches[o.PaidBatchID] = true
		}
	}

	for _, id := range sortedKeys(t.notifications) {
		if ref := parseRefs(t.notifications[id]).SweepBatchID; ref != "" {
			t.loadRun(ctx, ref)
		}
	}

	for _, paidBatchID := range sortedKeys(t.paidBatches) {
		t.loadPayment(ctx, paidBatchID)
	}
}

func (t *trace) loadBatch(ctx context.Context, id string) {
	if id == "" || t.batches[id] != nil {
		return
	}
	b, err := t.s.batches.GetBatch(ctx, id)
	if err != nil {
		t.gap(domain.StagePrepareBatch, id, err)
		return
	}
	t.addBatch(b)
}

func (t *trace) loadPrepared(ctx context.Context, o *domain.Order) {
	if o.PreparedOrderID == "" || t.nodes[nodeKey(domain.StagePreparedOrder, o.PreparedOrderID)] {
		return
	}
	staged, _, err := t.s.batches.ListPreparedOrders(ctx,
		domain.PreparedOrderFilter{BatchID: o.BatchID, BasketID: o.BasketID})
	if err != nil {
		t.gap(domain.StagePreparedOrder, o.PreparedOrderID, err)
		return
	}
	for _, p := range staged {
		if p.ID == o.PreparedOrderID {
			t.addPrepared(p)
			return
		}
	}
	t.gap(domain.StagePreparedOrder, o.PreparedOrderID, domain.ErrDataNotFound)
}

func (t *trace) loadOrderNotifications(ctx context.Context, o *domain.Order) {
	list, err := t.s.notifications.FindNotifications(ctx, domain.NotificationFilter{OrderID: o.ID})
	if err != nil {
		t.gap(domain.StageNotification, o.ID, err)
		return
	}
	for _, n := range list {
		t.addNotification(n)
	}
	if len(list) == 0 && (o.QueuedAt != nil || o.PlacedAt != nil) {
		t.gap(domain.StageNotification, o.ID, errors.New("no broker notification carries this order"))
	}
}

func (t *trace) loadRun(ctx context.Context, id string) {
	if t.runs[id] != nil {
		return
	}
	run, err := t.s.runs.GetSweepRun(ctx, id)
	if err != nil {
		t.gap(domain.StageSweepRun, id, err)
		return
	}
	t.addRun(run)
}

func (t *trace) loadPayment(ctx context.Context, paidBatchID string) {
	t.addPayment(paidBatchID)

	list, err := t.s.notifications.FindNotifications(ctx, domain.NotificationFilter{PaidBatchID: paidBatchID})
	if err != nil {
		t.gap(domain.StageNotification, paidBatchID, err)
	}
	for _, n := range list {
		t.addNotification(n)
	}

	transfers, err := t.s.transfers.FindTransfers(ctx, domain.TransferFilter{PaidBatchID: paidBatchID})
	switch {
	case err != nil:
		t.gap(domain.StageBankTransfer, paidBatchID, err)
	case len(transfers) == 0:
		t.gap(domain.StageBankTransfer, paidBatchID, errors.New("no bank transfer recorded"))
	}
	for _, tr := range transfers {
		at := tr.CreatedAt
		t.add(domain.LineageNode{
			Stage:  domain.StageBankTransfer,
			ID:     tr.ID,
			Parent: tr.PaidBatchID,
			Status: string(tr.Status),
			At:     &at,
			Details: details(
				"amount", tr.Amount.String(),
				"external_id", tr.ExternalID,
				"last_error", tr.LastError,
			),
		})
	}
}

func (t *trace) gap(stage domain.LineageStage, ref string, err error) {
	t.lineage.Gaps = append(t.lineage.Gaps, domain.LineageGap{Stage: stage, Ref: ref, Reason: err.Error()})
}

func nodeKey(stage domain.LineageStage, id string) string {
	return string(stage) + "|" + id
}

func (t *trace) add(node domain.LineageNode) {
	key := nodeKey(node.Stage, node.ID)
	if t.nodes[key] {
		return
	}
	t.nodes[key] = true
	t.lineage.Chain = append(t.lineage.Chain, node)
}

func (t *trace) addBatch(b *domain.PrepareBatch) {
	t.batches[b.ID] = b
	at := b.CreatedAt
	t.add(domain.LineageNode{
		Stage:  domain.StagePrepareBatch,
		ID:     b.ID,
		Status: string(b.Status),
		At:     &at,
		Details: details(
			"orders", strconv.Itoa(b.OrderCount),
			"members", strconv.Itoa(b.MemberCount),
			"total_amount", b.TotalAmount.String(),
		),
	})
}

func (t *trace) addPrepared(p *domain.PreparedOrder) {
	at := p.CreatedAt
	t.add(domain.LineageNode{
		Stage:  domain.StagePreparedOrder,
		ID:     p.ID,
		Parent: p.BatchID,
		At:     &at,
		Details: details(
			"basket_id", p.BasketID,
			"member_id", p.MemberID,
			"symbol", p.Symbol,
			"amount", p.Amount.String(),
		),
	})
}

func (t *trace) addOrders(list ...*domain.Order) {
	for _, o := range list {
		t.orders[o.ID] = o
		parent := o.PreparedOrderID
		if parent == "" {
			parent = o.BatchID
		}
		at := o.UpdatedAt
		t.add(domain.LineageNode{
			Stage:  domain.StageOrder,
			ID:     o.ID,
			Parent: parent,
			Status: string(o.Status),
			At:     &at,
			Details: details(
				"basket_id", o.BasketID,
				"broker_id", o.BrokerID,
				"symbol", o.Symbol,
				"broker_reference", o.BrokerReference,
				"exec_reference", o.ExecReference,
				"paid_batch_id", o.PaidBatchID,
			),
		})
	}
}

func (t *trace) addRun(run *domain.SweepRun) {
	t.runs[run.ID] = run
	at := run.StartedAt
	t.add(domain.LineageNode{
		Stage:  domain.StageSweepRun,
		ID:     run.ID,
		Parent: run.BatchID,
		Status: string(run.Status()),
		At:     &at,
		Details: details(
			"kind", string(run.Kind),
			"orders_processed", strconv.Itoa(run.OrdersProcessed),
			"orders_failed", strconv.Itoa(run.OrdersFailed),
		),
	})
}

func (t *trace) addNotification(n *domain.Notification) {
	t.notifications[n.ID] = n
	refs := parseRefs(n)
	parent := refs.SweepBatchID
	if parent == "" {
		parent = refs.PaidBatchID
	}
	code := ""
	if n.ResponseCode != nil {
		code = strconv.Itoa(*n.ResponseCode)
	}
	at := n.CreatedAt
	t.add(domain.LineageNode{
		Stage:  domain.StageNotification,
		ID:     n.ID,
		Parent: parent,
		Status: string(n.Status),
		At:     &at,
		Details: details(
			"event_type", n.EventType,
			"target", string(n.Target.Kind)+":"+n.Target.ID,
			"response_code", code,
		),
	})
}

// addPayment builds the payment batch node from the orders that carry its id.
func (t *trace) addPayment(paidBatchID string) {
	node := domain.LineageNode{Stage: domain.StagePaymentBatch, ID: paidBatchID, Status: "paid"}
	var merchant string
	count := 0
	for _, o := range t.orders {
		if o.PaidBatchID != paidBatchID {
			continue
		}
		count++
		merchant = o.MerchantID
		if o.PaidAt != nil && (node.At == nil || o.PaidAt.Before(*node.At)) {
			at := *o.PaidAt
			node.At = &at
		}
	}
	node.Details = details("merchant_id", merchant, "orders", strconv.Itoa(count))
	t.add(node)
}

// details builds a map from key/value pairs, skipping empty values.
func details(kv ...string) map[string]string {
	out := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			out[kv[i]] = kv[i+1]
		}
	}
	return out
}

func sortedOrders(m map[string]*domain.Order) []*domain.Order {
	list := make([]*domain.Order, 0, len(m))
	for _, id := range sortedKeys(m) {
		list = append(list, m[id])
	}
	return list
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
